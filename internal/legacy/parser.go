package legacy

import (
	"regexp"
	"strings"
)

// sectionRegex matches a section marker line like "[123]".
// Only positive integer section names start a record.
var sectionRegex = regexp.MustCompile(`^\[(\d+)\]$`)

// Parse converts legacy file text into songs, in file order.
//
// Parse is total: it never fails. Malformed lines and unrecognized keys are
// skipped, so bad input simply yields fewer records; judging whether the
// result is acceptable is the validator's job. Duplicate sections produce
// duplicate entries (no dedup here).
func Parse(text string) []Song {
	var songs []Song
	var current *Song

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := sectionRegex.FindStringSubmatch(line); m != nil {
			// Section boundary: flush the in-progress record first.
			if current != nil && current.ID != "" {
				songs = append(songs, *current)
			}
			current = &Song{ID: m[1]}
			continue
		}

		// key=value lines only count inside a section.
		if current == nil {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)

		switch strings.ToLower(strings.TrimSpace(key)) {
		case "arquivo":
			current.File = value
		case "artista":
			current.Artist = value
		case "musica":
			current.Title = value
		case "inicio":
			current.Start = value
		}
	}

	if current != nil && current.ID != "" {
		songs = append(songs, *current)
	}

	return songs
}
