package models

import (
	"encoding/json"
	"strings"

	"github.com/gamescout/scout/gamescout"
	"github.com/pkg/errors"
)

type JSON = string

// UnmarshalJSONAllowEmpty leaves out untouched when in is empty or null.
func UnmarshalJSONAllowEmpty(in JSON, out interface{}, what string) error {
	trimmed := strings.TrimSpace(in)
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	err := json.Unmarshal([]byte(trimmed), out)
	if err != nil {
		return errors.Wrapf(err, "decoding stored %s", what)
	}
	return nil
}

// User

func UnmarshalUser(in JSON) (*gamescout.User, error) {
	var out gamescout.User
	err := json.Unmarshal([]byte(in), &out)
	if err != nil {
		return nil, errors.Wrap(err, "decoding stored user")
	}

	return &out, nil
}

func MarshalUser(in *gamescout.User, out *JSON) error {
	contents, err := json.Marshal(in)
	if err != nil {
		return errors.WithStack(err)
	}
	*out = string(contents)
	return nil
}
