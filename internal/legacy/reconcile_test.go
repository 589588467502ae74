package legacy

import (
	"testing"
)

func snapshotOf(songs ...Song) Snapshot {
	snap := make(Snapshot, len(songs))
	for _, s := range songs {
		snap[s.ID] = s
	}
	return snap
}

func TestReconcile_EmptySnapshotInsertsAll(t *testing.T) {
	batch := Parse(sampleFile)
	plan := Reconcile(batch, Snapshot{})

	if len(plan.Insert) != 2 || len(plan.Update) != 0 || len(plan.Unchanged) != 0 {
		t.Errorf("plan = %d/%d/%d insert/update/unchanged, want 2/0/0",
			len(plan.Insert), len(plan.Update), len(plan.Unchanged))
	}
	if plan.Insert[0].ID != "001" || plan.Insert[1].ID != "002" {
		t.Errorf("inserts out of file order: %+v", plan.Insert)
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	// Reconciling a batch against a snapshot that already reflects it
	// yields an all-unchanged plan.
	batch := Parse(sampleFile)
	snap := snapshotOf(batch...)

	plan := Reconcile(batch, snap)
	if len(plan.Insert) != 0 || len(plan.Update) != 0 {
		t.Errorf("plan has %d inserts and %d updates, want none",
			len(plan.Insert), len(plan.Update))
	}
	if len(plan.Unchanged) != len(batch) {
		t.Errorf("unchanged = %d, want %d", len(plan.Unchanged), len(batch))
	}
}

func TestReconcile_CaseAndWhitespaceInsensitive(t *testing.T) {
	snap := snapshotOf(Song{ID: "001", File: "111.mp3", Artist: "Legião Urbana", Title: "Tempo Perdido", Start: "00:15"})
	batch := []Song{{ID: "001", File: "111.MP3", Artist: "legião urbana ", Title: "Tempo Perdido", Start: " 00:15"}}

	plan := Reconcile(batch, snap)
	if len(plan.Unchanged) != 1 {
		t.Errorf("plan = %+v, want the record classified unchanged", plan)
	}
}

func TestReconcile_IDComparedExactly(t *testing.T) {
	// "01" and "001" are different ids even though they trim the same way
	// numerically; the batch record must classify as an insert.
	snap := snapshotOf(Song{ID: "001", Artist: "x"})
	plan := Reconcile([]Song{{ID: "01", Artist: "x"}}, snap)

	if len(plan.Insert) != 1 {
		t.Errorf("plan = %+v, want one insert", plan)
	}
}

func TestReconcile_ChangedFieldProducesFullUpdate(t *testing.T) {
	snap := snapshotOf(Song{ID: "001", File: "old.mp3", Artist: "Old Artist", Title: "Old Title", Start: "00:00"})
	incoming := Song{ID: "001", File: "new.mp3", Artist: "Old Artist", Title: "Old Title", Start: "00:00"}

	plan := Reconcile([]Song{incoming}, snap)
	if len(plan.Update) != 1 {
		t.Fatalf("plan = %+v, want one update", plan)
	}
	// The update carries the batch's values for all four fields.
	if plan.Update[0] != incoming {
		t.Errorf("Update[0] = %+v, want %+v", plan.Update[0], incoming)
	}
}

func TestReconcile_LastWriteWinsWithinBatch(t *testing.T) {
	snap := snapshotOf(Song{ID: "001", Artist: "Stored"})
	batch := []Song{
		{ID: "001", Artist: "Changed"}, // would be an update
		{ID: "001", Artist: "stored "}, // equal after normalization
	}

	plan := Reconcile(batch, snap)
	if len(plan.Update) != 0 {
		t.Errorf("updates = %+v, want none (later record reclassifies)", plan.Update)
	}
	if len(plan.Unchanged) != 1 {
		t.Errorf("unchanged = %+v, want the final record", plan.Unchanged)
	}
}

func TestReconcile_PartitionsAreDisjoint(t *testing.T) {
	snap := snapshotOf(
		Song{ID: "1", Artist: "same"},
		Song{ID: "2", Artist: "old"},
	)
	batch := []Song{
		{ID: "1", Artist: "same"},
		{ID: "2", Artist: "new"},
		{ID: "3", Artist: "brand new"},
	}

	plan := Reconcile(batch, snap)
	if len(plan.Insert) != 1 || len(plan.Update) != 1 || len(plan.Unchanged) != 1 {
		t.Errorf("plan = %d/%d/%d, want 1/1/1", len(plan.Insert), len(plan.Update), len(plan.Unchanged))
	}

	stats := plan.Stats(len(batch))
	if stats.Total != 3 || stats.New != 1 || stats.Updated != 1 || stats.Unchanged != 1 {
		t.Errorf("stats = %+v, want total 3, 1 each", stats)
	}
}
