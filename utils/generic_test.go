package utils

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// Tests that we're returning current time.
func TestTimeNow(t *testing.T) {
	assert.Equal(t, time.Now().UTC().Unix(), TimeNow())
}

// Tests accessory IDs generation.
func TestAccessoryID(t *testing.T) {
	id := AccessoryID("living room tv")
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, AccessoryID("living room tv"))
	assert.NotEqual(t, id, AccessoryID("living room lamp"))
}

// Tests config file location.
func TestGetDefaultConfigPath(t *testing.T) {
	ConfigPath = ""
	cd, _ := os.Getwd()
	assert.Equal(t, fmt.Sprintf("%s/configs/config.yaml", cd), GetDefaultConfigPath(), "regular")

	ConfigPath = "testData/config.yaml"
	defer func() { ConfigPath = "" }()
	assert.Equal(t, ConfigPath, GetDefaultConfigPath(), "changed")
}

// Tests switch name normalization.
func TestNormalizeName(t *testing.T) {
	data := map[string]string{
		"Switch 1":   "switch_1",
		"switch-2":   "switch_2",
		"switch.3":   "switch_3",
		"switch%4":   "switch_4",
		"свитч$5":    "свитч_5",
		" tv/light ": "tv_light",
		"a+b#c":      "a_b_c",
	}

	for k, v := range data {
		assert.Equal(t, v, NormalizeName(k), k)
	}
}
