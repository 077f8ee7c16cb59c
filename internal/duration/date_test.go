package duration

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    Date
		wantErr bool
	}{
		{"2023-01-31", Date{2023, time.January, 31}, false},
		{" 2024-02-29 ", Date{2024, time.February, 29}, false},
		{"2023-01-31T00:00:00.000Z", Date{2023, time.January, 31}, false},
		{"2023-02-29", Date{}, true},
		{"2023-02-30", Date{}, true},
		{"2023-13-01", Date{}, true},
		{"23-1-5", Date{}, true},
		{"", Date{}, true},
		{"not a date", Date{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseDate(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParseDate(%q) = %+v, want %+v", tc.input, got, tc.want)
			}
		})
	}
}

func TestDateOf_StripsTimeInOwnZone(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	ts := time.Date(2023, time.March, 1, 23, 59, 0, 0, loc)

	if got, want := DateOf(ts), (Date{2023, time.March, 1}); got != want {
		t.Errorf("DateOf() = %s, want %s", got, want)
	}
	if got, want := DateOf(ts.UTC()), (Date{2023, time.March, 1}); got != want {
		t.Errorf("DateOf(UTC) = %s, want %s", got, want)
	}
}

func TestNewDate_Normalizes(t *testing.T) {
	if got, want := NewDate(2023, time.February, 29), (Date{2023, time.March, 1}); got != want {
		t.Errorf("NewDate(2023-02-29) = %s, want %s", got, want)
	}
	if got, want := NewDate(2024, time.February, 29), (Date{2024, time.February, 29}); got != want {
		t.Errorf("NewDate(2024-02-29) = %s, want %s", got, want)
	}
}

func TestDate_Arithmetic(t *testing.T) {
	d := NewDate(2023, time.December, 30)

	if got := d.AddDays(3); got != NewDate(2024, time.January, 2) {
		t.Errorf("AddDays(3) = %s", got)
	}
	if got := d.AddDays(-365); got != NewDate(2022, time.December, 30) {
		t.Errorf("AddDays(-365) = %s", got)
	}
	if got := d.DaysUntil(NewDate(2024, time.January, 2)); got != 3 {
		t.Errorf("DaysUntil() = %d, want 3", got)
	}
	if got := NewDate(1700, time.January, 1).DaysUntil(NewDate(2100, time.January, 1)); got != 146097 {
		t.Errorf("DaysUntil over 400 years = %d, want 146097", got)
	}
	if !d.Before(d.AddDays(1)) || d.Before(d) {
		t.Error("Before() is wrong")
	}
	if !d.After(d.AddDays(-1)) || d.After(d) {
		t.Error("After() is wrong")
	}
}

func TestDate_JSON(t *testing.T) {
	type wrapper struct {
		Date Date `json:"date"`
	}

	data, err := json.Marshal(wrapper{Date: NewDate(2023, time.January, 5)})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if got, want := string(data), `{"date":"2023-01-05"}`; got != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}

	var w wrapper
	if err := json.Unmarshal([]byte(`{"date":"2023-02-30"}`), &w); err == nil {
		t.Error("Unmarshal() should reject 2023-02-30")
	}
}

func TestDate_IsZero(t *testing.T) {
	if !(Date{}).IsZero() {
		t.Error("zero Date IsZero() = false")
	}
	if NewDate(2023, time.January, 1).IsZero() {
		t.Error("real date IsZero() = true")
	}
}

func FuzzParseDate(f *testing.F) {
	f.Add("2023-01-31")
	f.Add("2024-02-29")
	f.Add("2023-02-29")
	f.Add("0001-01-01")
	f.Add("9999-12-31T23:59:59Z")
	f.Add("")
	f.Add("\x00\x01")

	f.Fuzz(func(t *testing.T, s string) {
		d, err := ParseDate(s)
		if err != nil {
			return
		}
		again, err := ParseDate(d.String())
		if err != nil {
			t.Fatalf("ParseDate(%q) ok but re-parse of %q failed: %v", s, d.String(), err)
		}
		if again != d {
			t.Errorf("round trip %q: %s != %s", s, again, d)
		}
	})
}
