package gamescout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

func asHTTPCodeError(res *http.Response) error {
	if res.StatusCode/100 != 2 {
		return &APIError{StatusCode: res.StatusCode}
	}
	return nil
}

// ParseAPIResponse unmarshals an HTTP response into one of our response
// data structures. Any `error` field in the body turns into an *APIError,
// whatever the status code.
func ParseAPIResponse(dst interface{}, res *http.Response) error {
	if res == nil || res.Body == nil {
		return errors.New("No response from server")
	}

	bodyReader := res.Body
	defer bodyReader.Close()

	body, err := io.ReadAll(bodyReader)
	if err != nil {
		return errors.WithStack(err)
	}

	if dumpAPICalls {
		fmt.Fprintf(os.Stderr, "[response] %d %s\n", res.StatusCode, string(body))
	}

	intermediate := make(map[string]interface{})

	err = json.NewDecoder(bytes.NewReader(body)).Decode(&intermediate)
	if err != nil {
		if he := asHTTPCodeError(res); he != nil {
			return he
		}
		if dst == nil {
			// e.g. 204 No Content on delete
			return nil
		}

		return errors.Errorf("JSON decode error: %s\n\nBody: %s\n\n", err.Error(), string(body))
	}

	if errorField, ok := intermediate["error"]; ok && errorField != nil {
		if message, ok := errorField.(string); ok && message != "" {
			return &APIError{Message: message, StatusCode: res.StatusCode}
		}
	}

	if he := asHTTPCodeError(res); he != nil {
		return he
	}

	if dst == nil {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           dst,
		WeaklyTypedInput: true,
		Squash:           true,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	err = decoder.Decode(intermediate)
	if err != nil {
		return errors.Errorf("mapstructure decode error: %s\n\nBody: %#v\n\n", err.Error(), intermediate)
	}

	return nil
}
