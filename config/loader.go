package config

import (
	"github.com/embeddedengine-io/embeddedengine/config/providers"
)

// Loader is configuration loader
type Loader struct {
	cfg         *Config
	envPrefix   string
	filename    string
	fileContent []byte
}

func NewLoader(cfg *Config) *Loader {
	return &Loader{cfg: cfg}
}

func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

func (l *Loader) WithFilename(filename string) *Loader {
	l.filename = filename
	return l
}

func (l *Loader) WithFileContent(content []byte) *Loader {
	l.fileContent = content
	return l
}

func (l *Loader) Load() error {
	err := providers.NewYAMLProvider(l.filename, l.fileContent).Load(l.cfg)
	if err != nil {
		return err
	}

	if l.envPrefix != "" {
		err = providers.NewEnvProvider(l.envPrefix).Load(l.cfg)
		if err != nil {
			return err
		}
	}

	return nil
}

func Load(filename string, cfg *Config) error {
	return NewLoader(cfg).WithEnvPrefix("EMBEDDEDENGINE").WithFilename(filename).Load()
}
