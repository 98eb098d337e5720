package recording

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Formats lists the file extensions Read and Write understand.
var Formats = []string{".yaml", ".yml", ".toml", ".json"}

// Write writes metadata to path, encoding by file extension.
func Write(m *Metadata, path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(m)
	case ".toml":
		data, err = toml.Marshal(m)
	case ".json":
		data, err = json.MarshalIndent(m, "", "  ")
	default:
		return fmt.Errorf("unsupported metadata format: %s", path)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Read reads metadata from path, decoding by file extension.
func Read(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Metadata
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &m)
	case ".toml":
		err = toml.Unmarshal(data, &m)
	case ".json":
		err = json.Unmarshal(data, &m)
	default:
		return nil, fmt.Errorf("unsupported metadata format: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	// relative video paths are relative to the metadata file
	if m.Video.Path != "" && !filepath.IsAbs(m.Video.Path) {
		m.Video.Path = filepath.Join(filepath.Dir(path), m.Video.Path)
	}
	return &m, nil
}
