package utils

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// accessoryNamespace is a namespace for switch accessory IDs.
var accessoryNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("go-home.io/cmdswitch"))

// TimeNow returns epoch UTC.
func TimeNow() int64 {
	return time.Now().UTC().Unix()
}

// AccessoryID generates stable accessory ID out of a switch name.
// The same name always produces the same ID, so cached accessories survive restarts.
func AccessoryID(name string) string {
	return uuid.NewSHA1(accessoryNamespace, []byte(name)).String()
}

// NormalizeName makes a switch name safe for topics and URLs.
func NormalizeName(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	replacer := strings.NewReplacer("%", "_",
		"/", "_",
		"\\", "_",
		":", "_",
		";", "_",
		".", "_",
		"$", "_",
		"-", "_",
		"+", "_",
		"#", "_",
		" ", "_")
	return replacer.Replace(raw)
}

// GetCurrentWorkingDir returns application working directory.
func GetCurrentWorkingDir() string {
	cwd, err := os.Getwd()
	if err != nil {
		panic("Failed to get current working dir")
	}

	return cwd
}

// GetDefaultConfigPath returns default platform config location which is cwd/configs/config.yaml.
func GetDefaultConfigPath() string {
	if ConfigPath != "" {
		return ConfigPath
	}

	return fmt.Sprintf("%s/configs/config.yaml", GetCurrentWorkingDir())
}

// ConfigPath allows to re-write default config location.
var ConfigPath = ""
