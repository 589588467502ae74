package legacy

import (
	"fmt"
	"strings"
	"testing"
)

const sampleFile = `[001]
arquivo=11111.mp3
artista=Legião Urbana
musica=Tempo Perdido
inicio=00:15

[002]
arquivo=22222.mp3
artista=Cazuza
musica=Exagerado
inicio=00:08
`

func TestParse_WellFormed(t *testing.T) {
	songs := Parse(sampleFile)

	if len(songs) != 2 {
		t.Fatalf("Parse() returned %d songs, want 2", len(songs))
	}

	want := Song{ID: "001", File: "11111.mp3", Artist: "Legião Urbana", Title: "Tempo Perdido", Start: "00:15"}
	if songs[0] != want {
		t.Errorf("songs[0] = %+v, want %+v", songs[0], want)
	}
	if songs[1].ID != "002" || songs[1].Artist != "Cazuza" {
		t.Errorf("songs[1] = %+v, want id 002 by Cazuza", songs[1])
	}
}

func TestParse_PreservesFileOrder(t *testing.T) {
	// N fully populated sections parse to exactly N records, in order.
	var b strings.Builder
	for i := 10; i > 0; i-- {
		fmt.Fprintf(&b, "[%d]\narquivo=%d.mp3\nartista=a\nmusica=m\ninicio=0\n", i, i)
	}

	songs := Parse(b.String())
	if len(songs) != 10 {
		t.Fatalf("Parse() returned %d songs, want 10", len(songs))
	}
	for i, song := range songs {
		if want := fmt.Sprintf("%d", 10-i); song.ID != want {
			t.Errorf("songs[%d].ID = %q, want %q", i, song.ID, want)
		}
		if song.File == "" || song.Artist == "" || song.Title == "" || song.Start == "" {
			t.Errorf("songs[%d] has empty fields: %+v", i, song)
		}
	}
}

func TestParse_CRLFAndWhitespace(t *testing.T) {
	text := "[5]\r\n  arquivo = file.mp3 \r\nARTISTA=Someone\r\n\r\nMusica=Song\r\ninicio=00:01\r\n"
	songs := Parse(text)

	if len(songs) != 1 {
		t.Fatalf("Parse() returned %d songs, want 1", len(songs))
	}
	got := songs[0]
	if got.File != "file.mp3" {
		t.Errorf("File = %q, want trimmed %q", got.File, "file.mp3")
	}
	if got.Artist != "Someone" || got.Title != "Song" {
		t.Errorf("keys should be case-insensitive, got %+v", got)
	}
}

func TestParse_MalformedInput(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"no sections", "arquivo=a.mp3\nartista=x\n", 0},
		{"garbage lines", "hello\n<<<>>>\nnot ini at all\n", 0},
		{"non-numeric section", "[abc]\narquivo=a.mp3\n", 0},
		{"section without fields", "[7]\n", 1},
		{"unknown keys ignored", "[7]\nfoo=bar\nduracao=180\n", 1},
		{"field before any section", "arquivo=a.mp3\n[7]\nartista=x\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			songs := Parse(tt.text)
			if len(songs) != tt.want {
				t.Errorf("Parse(%q) returned %d songs, want %d", tt.text, len(songs), tt.want)
			}
		})
	}
}

func TestParse_DefaultsToEmptyFields(t *testing.T) {
	songs := Parse("[3]\nartista=Only Artist\n")
	if len(songs) != 1 {
		t.Fatalf("Parse() returned %d songs, want 1", len(songs))
	}
	got := songs[0]
	if got.File != "" || got.Title != "" || got.Start != "" {
		t.Errorf("unassigned fields should stay empty, got %+v", got)
	}
	if got.Artist != "Only Artist" {
		t.Errorf("Artist = %q, want %q", got.Artist, "Only Artist")
	}
}

func TestParse_DuplicateSectionsKept(t *testing.T) {
	text := "[1]\nartista=First\n[1]\nartista=Second\n"
	songs := Parse(text)

	if len(songs) != 2 {
		t.Fatalf("Parse() returned %d songs, want 2 (no dedup)", len(songs))
	}
	if songs[0].Artist != "First" || songs[1].Artist != "Second" {
		t.Errorf("duplicate sections out of order: %+v", songs)
	}
}

func TestParse_LastValueWinsWithinSection(t *testing.T) {
	songs := Parse("[1]\nartista=Old\nartista=New\n")
	if len(songs) != 1 || songs[0].Artist != "New" {
		t.Errorf("repeated key should keep last value, got %+v", songs)
	}
}
