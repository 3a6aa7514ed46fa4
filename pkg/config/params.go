package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ReadParams decodes a params file into a nested map. The format follows
// the extension: .yaml/.yml, .toml or .json. An empty file is an empty map.
func ReadParams(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadingParams, err)
	}
	return DecodeParams(filepath.Ext(path), data)
}

// DecodeParams decodes params data in the format named by ext.
func DecodeParams(ext string, data []byte) (map[string]any, error) {
	var (
		m   map[string]any
		err error
	)
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &m)
	case ".toml":
		err = toml.Unmarshal(data, &m)
	case ".json":
		if len(strings.TrimSpace(string(data))) > 0 {
			err = json.Unmarshal(data, &m)
		}
	default:
		return nil, ErrUnsupportedParams
	}
	if err != nil {
		return nil, errors.Join(ErrReadingParams, err)
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}
