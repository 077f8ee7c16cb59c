package storage

import (
	"strings"
	"testing"

	"dayssince/internal/duration"
)

// FuzzImport feeds arbitrary documents to Import. It must never panic and a
// rejected document must leave the collection untouched.
func FuzzImport(f *testing.F) {
	f.Add(`{"events": []}`)
	f.Add(`{"events": [{"id": 1, "name": "a", "date": "2024-02-29", "showAnniversary": true}]}`)
	f.Add(`{"events": [{"id": 1, "name": "a", "date": "2023-02-29"}]}`)
	f.Add(`{"events": [{"id": 1, "name": "a", "date": "2023-01-01", "dueDuration": -1}]}`)
	f.Add(`{"events": null}`)
	f.Add(`{"events": [{"id": 1, "name": "a", "da`)
	f.Add(`{}`)
	f.Add(``)
	f.Add(`{"events": [{"id": 9007199254740993, "name": "` + strings.Repeat("x", 101) + `", "date": "9999-12-31"}]}`)

	f.Fuzz(func(t *testing.T, data string) {
		store := createTestStore(t)
		orig, err := store.AddEvent(EventInput{Name: "existing", Date: duration.NewDate(2020, 1, 1)})
		if err != nil {
			t.Fatal(err)
		}

		defer func() {
			if r := recover(); r != nil {
				t.Errorf("Import panicked with %q: %v", data, r)
			}
		}()

		if err := store.Import([]byte(data)); err != nil {
			events := store.Events()
			if len(events) != 1 || events[0] != *orig {
				t.Errorf("failed import changed events: %+v", events)
			}
			return
		}

		// Accepted documents survive a round trip.
		out, err := store.ExportJSON()
		if err != nil {
			t.Fatalf("ExportJSON() error = %v", err)
		}
		if _, err := ParseSnapshot(out); err != nil {
			t.Errorf("re-parse of export failed: %v", err)
		}
	})
}

// FuzzAddEvent checks name validation never panics and agrees with the
// documented limits.
func FuzzAddEvent(f *testing.F) {
	f.Add("", 0)
	f.Add("Valid", 30)
	f.Add(strings.Repeat("a", maxEventNameLen), 1)
	f.Add(strings.Repeat("a", maxEventNameLen+1), 1)
	f.Add("unicode üéâ", -5)
	f.Add("   ", 0)

	f.Fuzz(func(t *testing.T, name string, due int) {
		store := createTestStore(t)
		_, err := store.AddEvent(EventInput{
			Name:            name,
			Date:            duration.NewDate(2024, 1, 1),
			ShowNextDueDate: true,
			DueDuration:     due,
		})

		trimmed := strings.TrimSpace(name)
		wantErr := trimmed == "" || len(trimmed) > maxEventNameLen || due < 0
		if (err != nil) != wantErr {
			t.Errorf("AddEvent(%q, %d) error = %v, wantErr %v", name, due, err, wantErr)
		}
	})
}
