// Package repository defines the data access interface for saved circuits.
//
// The sqlite subpackage implements it on an embedded SQLite database. Each
// saved circuit is one row holding the component list as JSON plus a few
// indexed facts (firmware digest, component count, save time) so listings
// never decode the JSON.
//
// A small key/value metadata table holds process-level state such as the
// workspace autosave.
package repository
