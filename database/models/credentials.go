package models

import (
	"crawshaw.io/sqlite"
	"github.com/gamescout/scout/gamescout"
)

// LoadCredentials returns the stored access token and identity. Both are
// empty unless both keys are present.
func LoadCredentials(conn *sqlite.Conn) (string, *gamescout.User, error) {
	token, hasToken, err := GetItem(conn, StorageKeyToken)
	if err != nil {
		return "", nil, err
	}

	rawUser, hasUser, err := GetItem(conn, StorageKeyUser)
	if err != nil {
		return "", nil, err
	}

	if !hasToken || !hasUser || token == "" {
		return "", nil, nil
	}

	user, err := UnmarshalUser(rawUser)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// SaveCredentials stores the token and the identity together.
func SaveCredentials(conn *sqlite.Conn, token string, user *gamescout.User) error {
	var rawUser JSON
	err := MarshalUser(user, &rawUser)
	if err != nil {
		return err
	}

	return SetItems(conn, map[string]string{
		StorageKeyToken: token,
		StorageKeyUser:  rawUser,
	})
}

// SaveUser replaces the stored identity, keeping the token.
func SaveUser(conn *sqlite.Conn, user *gamescout.User) error {
	var rawUser JSON
	err := MarshalUser(user, &rawUser)
	if err != nil {
		return err
	}
	return SetItem(conn, StorageKeyUser, rawUser)
}

// ClearCredentials removes the token and the identity together.
func ClearCredentials(conn *sqlite.Conn) error {
	return RemoveItems(conn, StorageKeyToken, StorageKeyUser)
}
