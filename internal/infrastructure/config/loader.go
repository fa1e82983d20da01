// Package config loads and writes the .tagctl.yaml file.
package config

import (
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/tagctl/internal/application"
)

type Loader struct{}

type fileConfig struct {
	Version  int          `yaml:"version"`
	Manifest fileManifest `yaml:"manifest"`
	Tag      fileTag      `yaml:"tag"`
	Push     filePush     `yaml:"push"`
	History  string       `yaml:"history,omitempty"`
}

type fileManifest struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format,omitempty"`
}

type fileTag struct {
	Prefix   string `yaml:"prefix,omitempty"`
	Annotate bool   `yaml:"annotate,omitempty"`
	Message  string `yaml:"message,omitempty"`
}

type filePush struct {
	Remote   string `yaml:"remote,omitempty"`
	Rollback bool   `yaml:"rollback,omitempty"`
}

func (l Loader) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (l Loader) Load(path string) (application.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return application.Config{}, err
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return application.Config{}, err
	}

	return application.Config{
		Version:  cfg.Version,
		Manifest: cfg.Manifest.Path,
		Format:   cfg.Manifest.Format,
		Prefix:   cfg.Tag.Prefix,
		Annotate: cfg.Tag.Annotate,
		Message:  cfg.Tag.Message,
		Remote:   cfg.Push.Remote,
		Rollback: cfg.Push.Rollback,
		History:  cfg.History,
	}, nil
}

func Write(w io.Writer, cfg application.Config) error {
	out := fileConfig{
		Version:  cfg.Version,
		Manifest: fileManifest{Path: cfg.Manifest, Format: cfg.Format},
		Tag:      fileTag{Prefix: cfg.Prefix, Annotate: cfg.Annotate, Message: cfg.Message},
		Push:     filePush{Remote: cfg.Remote, Rollback: cfg.Rollback},
		History:  cfg.History,
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	return enc.Encode(out)
}
