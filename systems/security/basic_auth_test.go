package security

import (
	"encoding/base64"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-home-io/cmdswitch/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func getProvider(t *testing.T, logCallback func(string), mockData string) *basicAuthProvider {
	dir := t.TempDir()
	if "" != mockData {
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, UsersFileName), []byte(mockData), 0600))
	}

	return NewSecurityProvider(&ConstructSecurity{
		ConfigLocation: filepath.Join(dir, "config.yaml"),
		Logger:         mocks.FakeNewLogger(logCallback),
	}).(*basicAuthProvider)
}

func getAuthHeader(usr, pwd string) map[string][]string {
	pair := fmt.Sprintf("%s:%s", usr, pwd)

	return map[string][]string{"Authorization": {
		fmt.Sprintf("Basic %s", base64.StdEncoding.EncodeToString([]byte(pair)))}}
}

func getFileRecord(usr, pwd string) string {
	b, _ := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.MinCost)
	return fmt.Sprintf("%s:%s", usr, string(b))
}

// Tests missing users file.
func TestFileAccessError(t *testing.T) {
	logFound := false
	prov := getProvider(t, func(m string) {
		if strings.HasPrefix(m, "_users file is not found") {
			logFound = true
		}
	}, "")

	assert.True(t, logFound)
	assert.False(t, prov.Enabled())
}

// Tests incorrect headers.
func TestHeaderErrors(t *testing.T) {
	prov := getProvider(t, nil, getFileRecord("user", "pwd"))
	require.True(t, prov.Enabled())

	data := []struct {
		headers map[string][]string
		err     error
	}{
		{
			headers: map[string][]string{},
			err:     &ErrNoHeader{},
		},
		{
			headers: map[string][]string{"Authorization": {"Bearer token"}},
			err:     &ErrNoHeader{},
		},
		{
			headers: map[string][]string{"Authorization": {"Basic Wrong header"}},
			err:     &ErrIncorrectHeader{},
		},
		{
			headers: map[string][]string{"Authorization": {
				"Basic " + base64.StdEncoding.EncodeToString([]byte("user"))}},
			err: &ErrCorruptedHeader{},
		},
	}

	for k, v := range data {
		_, err := prov.Authorize(v.headers)
		assert.IsType(t, v.err, err, "%d", k)
	}
}

// Tests users verification.
func TestAuthorize(t *testing.T) {
	content := strings.Join([]string{
		"# comment",
		getFileRecord("user1", "pwd1"),
		"",
		getFileRecord("user2", "pwd:2"),
		"broken line",
	}, "\n")
	prov := getProvider(t, nil, content)
	assert.Equal(t, 2, len(prov.presetPasswords))

	user, err := prov.Authorize(getAuthHeader("user1", "pwd1"))
	require.NoError(t, err)
	assert.Equal(t, "user1", user)

	user, err = prov.Authorize(getAuthHeader("user2", "pwd:2"))
	require.NoError(t, err)
	assert.Equal(t, "user2", user)

	_, err = prov.Authorize(getAuthHeader("user1", "pwd2"))
	assert.IsType(t, &ErrUserNotFound{}, err)

	_, err = prov.Authorize(getAuthHeader("user3", "pwd1"))
	assert.IsType(t, &ErrUserNotFound{}, err)
}
