package legacy

import "strings"

// Plan is the result of diffing a parsed batch against a catalog snapshot:
// three disjoint partitions keyed by what the caller should do with each
// record. Plans are built fresh per upload, consumed, and discarded.
type Plan struct {
	Insert    []Song
	Update    []Song
	Unchanged []Song
}

// Stats summarizes an import for the upload response. Total counts batch
// records as parsed; the other three count distinct ids, so they can sum to
// less than Total when the file repeats a section.
type Stats struct {
	Total     int `json:"total"`
	New       int `json:"new"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
}

// Stats builds the import summary for a plan produced from a batch of the
// given size.
func (p Plan) Stats(batchSize int) Stats {
	return Stats{
		Total:     batchSize,
		New:       len(p.Insert),
		Updated:   len(p.Update),
		Unchanged: len(p.Unchanged),
	}
}

// Reconcile classifies every batch record against the snapshot.
//
// A record whose id is absent from the snapshot goes to Insert. A present id
// with any comparable field differing (trim + lowercase comparison) goes to
// Update, carrying the batch's values for all four fields. Otherwise it is
// Unchanged. The id itself is only the lookup key and is compared exactly.
//
// Records are processed in batch order; when the batch repeats an id, the
// later record's classification replaces the earlier one (last write wins).
// Reconcile is pure: applying the plan is the caller's responsibility.
func Reconcile(batch []Song, snapshot Snapshot) Plan {
	// class per id, in first-seen order so the plan stays file-ordered.
	type decision struct {
		song  Song
		class int // 0 insert, 1 update, 2 unchanged
	}
	const (
		classInsert = iota
		classUpdate
		classUnchanged
	)

	var order []string
	decisions := make(map[string]decision, len(batch))

	for _, song := range batch {
		existing, ok := snapshot[song.ID]

		var d decision
		switch {
		case !ok:
			d = decision{song, classInsert}
		case fieldsEqual(song, existing):
			d = decision{song, classUnchanged}
		default:
			d = decision{song, classUpdate}
		}

		if _, seen := decisions[song.ID]; !seen {
			order = append(order, song.ID)
		}
		decisions[song.ID] = d
	}

	var plan Plan
	for _, id := range order {
		d := decisions[id]
		switch d.class {
		case classInsert:
			plan.Insert = append(plan.Insert, d.song)
		case classUpdate:
			plan.Update = append(plan.Update, d.song)
		default:
			plan.Unchanged = append(plan.Unchanged, d.song)
		}
	}

	return plan
}

// fieldsEqual compares the four comparable fields, ignoring surrounding
// whitespace and letter case.
func fieldsEqual(a, b Song) bool {
	return normalize(a.File) == normalize(b.File) &&
		normalize(a.Artist) == normalize(b.Artist) &&
		normalize(a.Title) == normalize(b.Title) &&
		normalize(a.Start) == normalize(b.Start)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
