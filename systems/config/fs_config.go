package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-home-io/cmdswitch/common"
	"github.com/go-home-io/cmdswitch/utils"
	"github.com/pkg/errors"
)

// Default file system config loader.
type fsConfig struct {
	sync.Mutex
	location string
	logger   common.ILoggerProvider
	modTime  time.Time
}

// Returning default file system config loader implementation.
func getFsProvider(ctor *ConstructConfig) *fsConfig {
	loc := ctor.Location
	if "" == loc {
		loc = utils.GetDefaultConfigPath()
		ctor.Logger.Info("Using default location", common.LogFileToken, loc)
	}

	return &fsConfig{
		location: loc,
		logger:   ctor.Logger,
	}
}

// Location returns config file path.
func (c *fsConfig) Location() string {
	return c.location
}

// Load reads config file from local file system.
func (c *fsConfig) Load() ([]byte, error) {
	c.Lock()
	defer c.Unlock()

	fi, err := os.Stat(c.location)
	if err != nil {
		return nil, errors.Wrap(err, "stat failed")
	}

	data, err := ioutil.ReadFile(c.location)
	if err != nil {
		return nil, errors.Wrap(err, "read failed")
	}

	c.modTime = fi.ModTime()
	c.logger.Debug("Processing config file", common.LogFileToken, c.location)
	return data, nil
}

// Save replaces config file content.
func (c *fsConfig) Save(data []byte) error {
	c.Lock()
	defer c.Unlock()

	mode := os.FileMode(0644)
	if fi, err := os.Stat(c.location); err == nil {
		mode = fi.Mode()
	}

	if err := os.MkdirAll(filepath.Dir(c.location), os.ModePerm); err != nil {
		return errors.Wrap(err, "mkdir failed")
	}

	tmp := c.location + ".tmp"
	if err := ioutil.WriteFile(tmp, data, mode); err != nil {
		return errors.Wrap(err, "write failed")
	}

	if err := os.Rename(tmp, c.location); err != nil {
		return errors.Wrap(err, "rename failed")
	}

	if fi, err := os.Stat(c.location); err == nil {
		c.modTime = fi.ModTime()
	}

	c.logger.Info("Config file is updated", common.LogFileToken, c.location)
	return nil
}

// Changed checks whether file was modified since the last load or save.
func (c *fsConfig) Changed() bool {
	c.Lock()
	defer c.Unlock()

	fi, err := os.Stat(c.location)
	if err != nil {
		c.logger.Warn("Failed to stat config file", common.LogFileToken, c.location)
		return false
	}

	return !fi.ModTime().Equal(c.modTime)
}
