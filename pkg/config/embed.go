package config

import (
	_ "embed"
	"errors"
)

//go:embed embedded/settings.toml
var defaultSettings []byte

//go:embed embedded/gen.toml
var starterGeneration []byte

//go:embed embedded/system.toml
var starterManager []byte

// StarterGeneration returns the gen.toml written by `config init`
func StarterGeneration() []byte {
	return starterGeneration
}

// StarterManager returns the managers/system.toml written by `config init`
func StarterManager() []byte {
	return starterManager
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}
