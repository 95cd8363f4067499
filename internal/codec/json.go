package codec

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"pinboard/internal/domain"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// ContentType returns the MIME type of exported documents
func (c *JSONCodec) ContentType() string {
	return "application/json"
}

// Parse imports a circuit from JSON
func (c *JSONCodec) Parse(r io.Reader) (*domain.Circuit, error) {
	var circuit domain.Circuit
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&circuit); err != nil {
		return nil, errors.Wrap(err, "failed to parse JSON")
	}
	if circuit.Components == nil {
		circuit.Components = []domain.Component{}
	}
	return &circuit, nil
}

// Export writes a circuit as indented JSON
func (c *JSONCodec) Export(circuit *domain.Circuit, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(circuit); err != nil {
		return errors.Wrap(err, "failed to encode JSON")
	}
	return nil
}
