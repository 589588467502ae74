package legacy

import (
	"fmt"
	"strings"
)

// Validation is the outcome of checking a legacy file for structural
// completeness. Errors is ordered and exhaustive: every record and every
// field is checked, and all violations are reported together.
type Validation struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate parses text and checks that every record carries all five fields.
// It never fails fast: the returned error list covers the whole file.
func Validate(text string) Validation {
	if strings.TrimSpace(text) == "" {
		return Validation{Errors: []string{"empty file"}}
	}

	songs := Parse(text)
	if len(songs) == 0 {
		return Validation{Errors: []string{"no records found"}}
	}

	var errs []string
	for i, song := range songs {
		id := song.ID
		if id == "" {
			id = "unknown"
			errs = append(errs, fmt.Sprintf("record %d: missing id", i+1))
		}
		for _, f := range []struct{ name, value string }{
			{"arquivo", song.File},
			{"artista", song.Artist},
			{"musica", song.Title},
			{"inicio", song.Start},
		} {
			if f.value == "" {
				errs = append(errs, fmt.Sprintf("record %d (id %s): field %q is empty", i+1, id, f.name))
			}
		}
	}

	return Validation{Valid: len(errs) == 0, Errors: errs}
}
