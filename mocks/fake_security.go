//go:build !release

package mocks

import (
	"errors"
	"net/http"
)

type fakeSecurity struct {
	users map[string]string
}

func (f *fakeSecurity) Enabled() bool {
	return len(f.users) > 0
}

func (f *fakeSecurity) Authorize(headers map[string][]string) (string, error) {
	r := &http.Request{Header: headers}
	user, pwd, ok := r.BasicAuth()
	if !ok {
		return "", errors.New("header not found")
	}

	if expected, ok := f.users[user]; ok && expected == pwd {
		return user, nil
	}

	return "", errors.New("user not found")
}

// FakeNewSecurityProvider creates a fake users store with plain-text passwords.
// Empty users list disables authorization.
func FakeNewSecurityProvider(users map[string]string) *fakeSecurity {
	return &fakeSecurity{
		users: users,
	}
}
