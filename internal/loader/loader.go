// Package loader reads circuit files from disk, picking the codec by file
// extension.
package loader

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"pinboard/internal/codec"
	"pinboard/internal/domain"
)

// ImporterFor returns the importer matching the extension of path
func ImporterFor(path string) (codec.Importer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return codec.NewYAMLCodec(), nil
	case ".json":
		return codec.NewJSONCodec(), nil
	default:
		return nil, errors.Errorf("unsupported circuit file %s: want .yaml, .yml or .json", path)
	}
}

// LoadFile parses the circuit stored at path. A circuit without a name is
// named after the file.
func LoadFile(path string) (*domain.Circuit, error) {
	importer, err := ImporterFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open circuit file")
	}
	defer f.Close()

	circuit, err := importer.Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", path)
	}
	if circuit.Name == "" {
		base := filepath.Base(path)
		circuit.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return circuit, nil
}
