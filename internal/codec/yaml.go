package codec

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"pinboard/internal/domain"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// ContentType returns the MIME type of exported documents
func (c *YAMLCodec) ContentType() string {
	return "application/yaml"
}

// yamlCircuit is the on-disk layout. Pins are kept as strings so "10" and
// "A0" round-trip the same way.
type yamlCircuit struct {
	Name       string          `yaml:"name,omitempty"`
	Components []yamlComponent `yaml:"components"`
}

type yamlComponent struct {
	ID   string  `yaml:"id,omitempty"`
	Type string  `yaml:"type"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Pin  string  `yaml:"pin,omitempty"`
}

// Parse imports a circuit from YAML. An empty document is an empty circuit.
func (c *YAMLCodec) Parse(r io.Reader) (*domain.Circuit, error) {
	var yc yamlCircuit
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&yc); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to parse YAML")
	}

	circuit := &domain.Circuit{
		Name:       yc.Name,
		Components: make([]domain.Component, 0, len(yc.Components)),
	}
	for i, ycomp := range yc.Components {
		if ycomp.Type == "" {
			return nil, errors.Errorf("component %d: missing type", i)
		}
		circuit.Components = append(circuit.Components, domain.Component{
			ID:       ycomp.ID,
			Type:     domain.ComponentType(ycomp.Type),
			Position: domain.Position{X: ycomp.X, Y: ycomp.Y},
			Pin:      ycomp.Pin,
		})
	}
	return circuit, nil
}

// Export writes a circuit as YAML
func (c *YAMLCodec) Export(circuit *domain.Circuit, w io.Writer) error {
	yc := yamlCircuit{
		Name:       circuit.Name,
		Components: make([]yamlComponent, 0, len(circuit.Components)),
	}
	for _, comp := range circuit.Components {
		yc.Components = append(yc.Components, yamlComponent{
			ID:   comp.ID,
			Type: string(comp.Type),
			X:    comp.Position.X,
			Y:    comp.Position.Y,
			Pin:  comp.Pin,
		})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(yc); err != nil {
		return errors.Wrap(err, "failed to encode YAML")
	}
	return encoder.Close()
}
