package settings

import (
	"bytes"
	"os"
	"text/template"

	"github.com/go-home-io/cmdswitch/common"
	"github.com/go-home-io/cmdswitch/providers"
	"github.com/pkg/errors"
)

// ITemplateProvider defines template logic.
type ITemplateProvider interface {
	Process([]byte) ([]byte, error)
}

// Template engine provider.
type provider struct {
	Logger    common.ILoggerProvider
	functions template.FuncMap
}

// Contains data required for a new template.
type constructTemplate struct {
	Secrets providers.ISecretProvider
	Logger  common.ILoggerProvider
}

// Constructs a new template engine.
func newTemplateProvider(ctor *constructTemplate) *provider {
	provider := &provider{
		Logger: ctor.Logger,
	}

	provider.functions = template.FuncMap{
		"env": provider.getEnvVariable,
	}

	if ctor.Secrets != nil {
		provider.functions["sec"] = ctor.Secrets.Get
	}

	return provider
}

// Process applies template functions to allow reading from environment variables
// and secrets store.
// Values are not escaped: commands are taken as is.
func (p *provider) Process(rawFile []byte) ([]byte, error) {
	tpl, err := template.New("cmdswitch").Funcs(p.functions).Parse(string(rawFile))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse template")
	}

	b := bytes.Buffer{}
	if err := tpl.Execute(&b, nil); err != nil {
		return nil, errors.Wrap(err, "failed to execute template")
	}

	return b.Bytes(), nil
}

// Returns environment variable.
func (p *provider) getEnvVariable(name string) string {
	p.Logger.Debug("Template is requesting environment variable",
		common.LogFieldToken, name, common.LogSystemToken, logSystem)
	return os.Getenv(name)
}
