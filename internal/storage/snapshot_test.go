package storage

import (
	"strings"
	"testing"
	"time"

	"dayssince/internal/duration"
)

func TestExportImport_RoundTrip(t *testing.T) {
	src := createTestStore(t)
	src.AddEvent(EventInput{Name: "Started running", Date: duration.NewDate(2022, time.April, 3), ShowAnniversary: true})
	src.AddEvent(EventInput{Name: "Oil change", Date: duration.NewDate(2024, time.February, 1), ShowNextDueDate: true, DueDuration: 90})
	src.SetDarkMode(true)

	data, err := src.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}

	dst := createTestStore(t)
	if err := dst.Import(data); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	want, got := src.Export(), dst.Export()
	if len(got.Events) != len(want.Events) {
		t.Fatalf("len(Events) = %d, want %d", len(got.Events), len(want.Events))
	}
	for i := range want.Events {
		if got.Events[i] != want.Events[i] {
			t.Errorf("event %d = %+v, want %+v", i, got.Events[i], want.Events[i])
		}
	}
	if got.IsDarkMode != want.IsDarkMode || got.ShowDetailedDuration != want.ShowDetailedDuration {
		t.Errorf("preferences = %+v, want %+v", got.Preferences(), want.Preferences())
	}

	if err := dst.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if n := len(dst.Events()); n != 2 {
		t.Errorf("persisted events = %d, want 2", n)
	}
}

func TestExportJSON_Keys(t *testing.T) {
	store := createTestStore(t)
	store.AddEvent(EventInput{Name: "x", Date: duration.NewDate(2024, time.January, 1)})

	data, err := store.ExportJSON()
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"events"`, `"isDarkMode"`, `"showDetailedDuration"`, `"showAnniversary"`, `"showNextDueDate"`, `"dueDuration"`, `"date": "2024-01-01"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("export missing %s:\n%s", key, data)
		}
	}
}

func TestImport_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"truncated", `{"events": [{"id": 1, "name": "a", "da`, "parse snapshot"},
		{"not an object", `[1,2,3]`, "parse snapshot"},
		{"missing events", `{"isDarkMode": true}`, "missing events"},
		{"invalid date", `{"events": [{"id": 1, "name": "a", "date": "2023-02-30"}]}`, "invalid date"},
		{"empty name", `{"events": [{"id": 1, "name": "", "date": "2023-02-03"}]}`, "name is required"},
		{"zero id", `{"events": [{"id": 0, "name": "a", "date": "2023-02-03"}]}`, "id must be positive"},
		{"duplicate id", `{"events": [{"id": 5, "name": "a", "date": "2023-02-03"}, {"id": 5, "name": "b", "date": "2023-02-04"}]}`, "duplicate id"},
		{"negative due", `{"events": [{"id": 1, "name": "a", "date": "2023-02-03", "dueDuration": -3}]}`, "negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := createTestStore(t)
			orig, _ := store.AddEvent(EventInput{Name: "Keep me", Date: duration.NewDate(2021, time.July, 4)})

			err := store.Import([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Import() error = %v, want containing %q", err, tt.wantErr)
			}

			events := store.Events()
			if len(events) != 1 || events[0] != *orig {
				t.Errorf("Events() after failed import = %+v", events)
			}
			if store.Preferences().DarkMode {
				t.Error("DarkMode changed by failed import")
			}

			store.Reload()
			if events := store.Events(); len(events) != 1 || events[0] != *orig {
				t.Errorf("persisted events after failed import = %+v", events)
			}
		})
	}
}

func TestImport_DefaultsMissingFlags(t *testing.T) {
	store := createTestStore(t)
	store.SetDarkMode(true)
	store.SetDetailedDuration(true)

	err := store.Import([]byte(`{"events": [{"id": 7, "name": "Only name", "date": "2020-02-29"}]}`))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	p := store.Preferences()
	if p.DarkMode || p.DetailedDuration {
		t.Errorf("Preferences() = %+v, want defaults", p)
	}
	ev, err := store.Event(7)
	if err != nil {
		t.Fatal(err)
	}
	if ev.ShowAnniversary || ev.ShowNextDueDate || ev.DueDuration != 0 {
		t.Errorf("Event() = %+v, want flags off", ev)
	}
}

func TestImport_EmptyCollection(t *testing.T) {
	store := createTestStore(t)
	store.AddEvent(EventInput{Name: "gone", Date: duration.NewDate(2024, time.January, 1)})

	if err := store.Import([]byte(`{"events": []}`)); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if n := len(store.Events()); n != 0 {
		t.Errorf("len(Events()) = %d, want 0", n)
	}
}

func TestImportSnapshot_AcceptsDateTimeInput(t *testing.T) {
	store := createTestStore(t)
	data := `{"events": [{"id": 1, "name": "Web export", "date": "2023-05-10T00:00:00.000Z", "showAnniversary": true}], "isDarkMode": true}`

	if err := store.Import([]byte(data)); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	ev, _ := store.Event(1)
	if ev.Date != duration.NewDate(2023, time.May, 10) {
		t.Errorf("Date = %v, want 2023-05-10", ev.Date)
	}
}
