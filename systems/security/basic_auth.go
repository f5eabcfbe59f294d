// Package security contains basic auth users store for the HTTP API.
package security

import (
	"encoding/base64"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/go-home-io/cmdswitch/common"
	"github.com/go-home-io/cmdswitch/providers"
	"golang.org/x/crypto/bcrypt"
)

const (
	// Logger system.
	logSystem = "security"
	// UsersFileName is htpasswd file which lives next to the platform config.
	UsersFileName = "_users"
	// Header with credentials.
	authHeader = "Authorization"
)

// Implements htpasswd-based users store.
type basicAuthProvider struct {
	logger          common.ILoggerProvider
	presetPasswords map[string]string
}

// ConstructSecurity has data required for a new users store.
type ConstructSecurity struct {
	ConfigLocation string
	Logger         common.ILoggerProvider
}

// NewSecurityProvider loads regular htpasswd file located next to the config.
// Passwords must be generated with -B option.
// Missing or empty file disables authorization.
func NewSecurityProvider(ctor *ConstructSecurity) providers.ISecurityProvider {
	b := &basicAuthProvider{
		logger: ctor.Logger,
	}

	name := filepath.Join(filepath.Dir(ctor.ConfigLocation), UsersFileName)
	if !b.readFile(name) {
		b.logger.Warn("_users file is not found, API is not protected", common.LogSystemToken, logSystem)
	}

	return b
}

// Enabled returns whether at least one user is known.
func (b *basicAuthProvider) Enabled() bool {
	return len(b.presetPasswords) > 0
}

// Authorize validates basic auth header against loaded file.
func (b *basicAuthProvider) Authorize(headers map[string][]string) (string, error) {
	var auth []string

	for k, v := range headers {
		if k != authHeader {
			continue
		}

		if 1 != len(v) {
			continue
		}

		auth = strings.SplitN(v[0], " ", 2)
		break
	}

	if 2 != len(auth) || "Basic" != auth[0] {
		b.logger.Debug("No Basic Auth header found", common.LogSystemToken, logSystem)
		return "", &ErrNoHeader{}
	}

	payload, err := base64.StdEncoding.DecodeString(auth[1])
	if err != nil {
		b.logger.Warn("Failed to decode Basic Auth header", common.LogSystemToken, logSystem)
		return "", &ErrIncorrectHeader{}
	}

	pair := strings.SplitN(string(payload), ":", 2)
	if 2 != len(pair) {
		b.logger.Warn("Corrupted Basic Auth header", common.LogSystemToken, logSystem)
		return "", &ErrCorruptedHeader{}
	}

	pwd, ok := b.presetPasswords[pair[0]]
	if ok && bcrypt.CompareHashAndPassword([]byte(pwd), []byte(pair[1])) == nil {
		return pair[0], nil
	}

	b.logger.Warn("User is unauthorized", common.LogUserToken, pair[0], common.LogSystemToken, logSystem)
	return "", &ErrUserNotFound{User: pair[0]}
}

// Reads htpasswd file.
func (b *basicAuthProvider) readFile(name string) bool {
	b.presetPasswords = make(map[string]string)
	bytes, err := ioutil.ReadFile(name)
	if err != nil {
		return false
	}

	for _, v := range strings.Split(string(bytes), "\n") {
		v = strings.TrimSpace(v)
		if 0 == len(v) || strings.HasPrefix(v, "#") {
			continue
		}

		parts := strings.SplitN(v, ":", 2)
		if 2 != len(parts) {
			continue
		}

		b.presetPasswords[parts[0]] = parts[1]
	}

	return true
}
