package codec

import (
	"io"

	"github.com/pkg/errors"

	"pinboard/internal/domain"
	"pinboard/internal/firmware"
)

// SketchExporter writes the generated firmware listing as an .ino file. It
// is export-only.
type SketchExporter struct{}

// NewSketchExporter creates a new sketch exporter
func NewSketchExporter() *SketchExporter {
	return &SketchExporter{}
}

// Format returns the codec format identifier
func (e *SketchExporter) Format() string {
	return "ino"
}

// ContentType returns the MIME type of exported documents
func (e *SketchExporter) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Export writes the listing for the circuit's components
func (e *SketchExporter) Export(circuit *domain.Circuit, w io.Writer) error {
	if _, err := io.WriteString(w, firmware.Generate(circuit.Components)); err != nil {
		return errors.Wrap(err, "failed to write sketch")
	}
	return nil
}
