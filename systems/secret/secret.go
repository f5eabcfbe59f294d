// Package secret contains file-based secrets store.
package secret

import (
	"io/ioutil"
	"path/filepath"
	"sync"

	"github.com/go-home-io/cmdswitch/common"
	"github.com/go-home-io/cmdswitch/providers"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	// Logger system.
	logSystem = "secret"
	// FileName is the secrets file which lives next to the platform config.
	FileName = "_secrets.yaml"
)

// File-based secrets store.
type fsSecret struct {
	sync.Mutex
	location string
	logger   common.ILoggerProvider
}

// ConstructSecret has data required for a new secrets provider.
type ConstructSecret struct {
	ConfigLocation string
	Logger         common.ILoggerProvider
}

// NewSecretProvider constructs a new secrets store located next to the config file.
func NewSecretProvider(ctor *ConstructSecret) providers.ISecretProvider {
	return &fsSecret{
		location: filepath.Join(filepath.Dir(ctor.ConfigLocation), FileName),
		logger:   ctor.Logger,
	}
}

// Get returns secret value.
// File is re-read every time, so config re-loads see updated secrets.
func (s *fsSecret) Get(name string) (string, error) {
	s.Lock()
	defer s.Unlock()

	s.logger.Debug("Requesting secret", common.LogFieldToken, name, common.LogSystemToken, logSystem)
	data, err := ioutil.ReadFile(s.location)
	if err != nil {
		return "", errors.Wrap(err, "failed to read secrets file")
	}

	secrets := make(map[string]string)
	if err := yaml.Unmarshal(data, &secrets); err != nil {
		return "", errors.Wrap(err, "failed to parse secrets file")
	}

	value, ok := secrets[name]
	if !ok {
		s.logger.Warn("Can't find requested secret", common.LogFieldToken, name,
			common.LogSystemToken, logSystem)
		return "", &ErrUnknownSecret{Name: name}
	}

	return value, nil
}
