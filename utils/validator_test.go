package utils

import (
	"testing"

	"github.com/go-home-io/cmdswitch/mocks"
	"github.com/stretchr/testify/assert"
)

type testStruct struct {
	Port  int    `validate:"required,port" default:"8080"`
	Level string `validate:"oneof=debug info" default:"info"`
}

// Tests success validation.
func TestSuccessValidation(t *testing.T) {
	in := []*testStruct{
		{},
		{
			Port:  65535,
			Level: "debug",
		},
	}

	validator := NewValidator(mocks.FakeNewLogger(nil))
	for _, v := range in {
		assert.True(t, validator.Validate(v), v.Level)
	}
}

// Tests default values.
func TestDefaults(t *testing.T) {
	d := &testStruct{}
	validator := NewValidator(mocks.FakeNewLogger(nil))
	assert.True(t, validator.Validate(d))
	assert.Equal(t, 8080, d.Port)
	assert.Equal(t, "info", d.Level)
}

// Tests validation without pointer.
func TestNotPointer(t *testing.T) {
	validator := NewValidator(mocks.FakeNewLogger(nil))
	d := testStruct{
		Port:  8080,
		Level: "info",
	}

	assert.False(t, validator.Validate(d))
}

// Tests incorrect data.
func TestFailedValidation(t *testing.T) {
	in := []*testStruct{
		{
			Port: 100000,
		},
		{
			Port: -1,
		},
		{
			Level: "verbose",
		},
	}

	validator := NewValidator(mocks.FakeNewLogger(nil))
	for k, v := range in {
		assert.False(t, validator.Validate(v), "%d", k)
	}
}
