// Package codec converts circuits to and from their file formats.
package codec

import (
	"io"

	"pinboard/internal/domain"
)

// Importer reads a circuit from a file format
type Importer interface {
	Parse(r io.Reader) (*domain.Circuit, error)
	Format() string
}

// Exporter writes a circuit in a file format
type Exporter interface {
	Export(circuit *domain.Circuit, w io.Writer) error
	Format() string
	ContentType() string
}
