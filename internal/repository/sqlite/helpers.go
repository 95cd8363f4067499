package sqlite

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"pinboard/internal/domain"
)

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// stringToNull safely converts string to sql.NullString
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// timeLayout is fixed width so text order matches time order
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "bad timestamp %q", s)
	}
	return t, nil
}

// ============================================================================
// JSON Marshaling Helpers
// ============================================================================

// marshalToNull marshals v to JSON, returning a null for nil
func marshalToNull(v interface{}) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, errors.Wrap(err, "failed to marshal JSON")
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// unmarshalJSONField safely unmarshals JSON from nullable string into target
func unmarshalJSONField(ns sql.NullString, target interface{}) error {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(ns.String), target); err != nil {
		return errors.Wrap(err, "failed to unmarshal JSON")
	}
	return nil
}

func marshalComponents(components []domain.Component) (string, error) {
	if components == nil {
		components = []domain.Component{}
	}
	data, err := json.Marshal(components)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal components")
	}
	return string(data), nil
}

// ============================================================================
// Row Types
// ============================================================================

// circuitRow holds a scanned circuits row
type circuitRow struct {
	name           string
	data           sql.NullString
	firmwareDigest sql.NullString
	componentCount int
	savedAt        string
}

func (r *circuitRow) scanArgs() []interface{} {
	return []interface{}{&r.name, &r.data, &r.firmwareDigest, &r.componentCount, &r.savedAt}
}

func (r *circuitRow) toDomain() (*domain.SavedCircuit, error) {
	c := &domain.SavedCircuit{
		Name:           r.name,
		Components:     []domain.Component{},
		FirmwareDigest: nullToString(r.firmwareDigest),
		ComponentCount: r.componentCount,
	}
	if err := unmarshalJSONField(r.data, &c.Components); err != nil {
		return nil, errors.Wrapf(err, "circuit %s", r.name)
	}
	savedAt, err := parseTime(r.savedAt)
	if err != nil {
		return nil, err
	}
	c.SavedAt = savedAt
	return c, nil
}
