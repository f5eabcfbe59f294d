package secret

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/go-home-io/cmdswitch/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Creates provider with the secrets file content.
func getProvider(t *testing.T, content string) (*fsSecret, string) {
	dir := t.TempDir()
	if "" != content {
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, FileName), []byte(content), 0600))
	}

	prov := NewSecretProvider(&ConstructSecret{
		ConfigLocation: filepath.Join(dir, "config.yaml"),
		Logger:         mocks.FakeNewLogger(nil),
	})

	return prov.(*fsSecret), dir
}

// Tests obtaining values.
func TestGet(t *testing.T) {
	prov, dir := getProvider(t, "mqtt: pass\nhost: 10.0.0.1")

	val, err := prov.Get("mqtt")
	require.NoError(t, err)
	assert.Equal(t, "pass", val)

	_, err = prov.Get("unknown")
	assert.IsType(t, &ErrUnknownSecret{}, err)

	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, FileName), []byte("mqtt: changed"), 0600))
	val, err = prov.Get("mqtt")
	require.NoError(t, err)
	assert.Equal(t, "changed", val)
}

// Tests missing or broken file.
func TestFileErrors(t *testing.T) {
	prov, _ := getProvider(t, "")
	_, err := prov.Get("val")
	assert.Error(t, err)

	prov, _ = getProvider(t, "val: -1\n-1")
	_, err = prov.Get("val")
	assert.Error(t, err)
}
