// Package legacy implements the BD.ini catalog import pipeline: parsing the
// bracketed-section key=value format, validating parsed records, and
// reconciling them against the persisted catalog.
//
// Everything in this package is pure: no I/O, no persistence. The web and
// core layers feed it decoded file contents and catalog snapshots and apply
// the plans it produces.
package legacy

// Song is one catalog entry as described by a legacy file section.
// ID is the stable external identifier (the section number), not a storage
// primary key. JSON field names match the wire format the API exposes.
type Song struct {
	ID     string `json:"id"`
	File   string `json:"arquivo"`
	Artist string `json:"artista"`
	Title  string `json:"musica"`
	Start  string `json:"inicio"`
}

// Snapshot is the full persisted catalog indexed by Song.ID, read once per
// reconciliation pass.
type Snapshot map[string]Song
