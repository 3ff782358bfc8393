package models

import (
	"testing"

	"github.com/gamescout/scout/gamescout"
	"github.com/stretchr/testify/require"
)

func Test_UnmarshalJSONAllowEmpty_EmptyString(t *testing.T) {
	require := require.New(t)

	type payload struct {
		Value string `json:"value"`
	}

	var out payload
	err := UnmarshalJSONAllowEmpty(JSON(""), &out, "payload")
	require.NoError(err)
	require.Equal(payload{}, out)
}

func Test_UnmarshalJSONAllowEmpty_Null(t *testing.T) {
	require := require.New(t)

	type payload struct {
		Value string `json:"value"`
	}

	var out payload
	err := UnmarshalJSONAllowEmpty(JSON("null"), &out, "payload")
	require.NoError(err)
	require.Equal(payload{}, out)
}

func Test_UnmarshalJSONAllowEmpty_Invalid(t *testing.T) {
	require := require.New(t)

	type payload struct {
		Value string `json:"value"`
	}

	var out payload
	err := UnmarshalJSONAllowEmpty(JSON("{"), &out, "payload")
	require.Error(err)
}

func Test_MarshalUser(t *testing.T) {
	require := require.New(t)

	var out JSON
	require.NoError(MarshalUser(&gamescout.User{
		ID:                7,
		Username:          "alice",
		FavoritePlatforms: []string{"PC"},
	}, &out))
	require.Contains(out, `"favorite_platforms":["PC"]`)

	user, err := UnmarshalUser(out)
	require.NoError(err)
	require.EqualValues(7, user.ID)
	require.EqualValues([]string{"PC"}, user.FavoritePlatforms)

	_, err = UnmarshalUser("{")
	require.Error(err)
}
