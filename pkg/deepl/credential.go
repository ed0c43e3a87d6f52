// Package deepl is the only part of the server that talks to the DeepL API.
package deepl

import (
	"errors"
	"strings"
)

const (
	// FreeURL serves keys of the DeepL API Free plan.
	FreeURL = "https://api-free.deepl.com"
	// ProURL serves keys of the DeepL API Pro plan.
	ProURL = "https://api.deepl.com"

	freeKeySuffix = ":fx"
)

// ErrMissingCredential is returned when no API key was supplied.
var ErrMissingCredential = errors.New("DEEPL_API_KEY is not set")

// Credential is the immutable DeepL authentication key. It is built once at
// startup and shared by every outbound call.
type Credential struct {
	key string
}

// NewCredential wraps an API key, rejecting an empty one.
func NewCredential(key string) (Credential, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return Credential{}, ErrMissingCredential
	}

	return Credential{key: key}, nil
}

// Free reports whether the key belongs to the Free plan.
func (cred Credential) Free() bool {
	return strings.HasSuffix(cred.key, freeKeySuffix)
}

// BaseURL returns the API host matching the key's plan.
func (cred Credential) BaseURL() string {
	if cred.Free() {
		return FreeURL
	}

	return ProURL
}

func (cred Credential) authorization() string {
	return "DeepL-Auth-Key " + cred.key
}

// String redacts the key so it never ends up in logs.
func (cred Credential) String() string {
	if len(cred.key) <= 4 {
		return "****"
	}

	return "****" + cred.key[len(cred.key)-4:]
}
