package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"2025-01-03", "2025-01-03", false},
		{"2024-02-29", "2024-02-29", false},
		{"2025-1-3", "", true},
		{"03-01-2025", "", true},
		{"2025-01-03T00:00:00Z", "", true},
		{"2025-13-01", "", true},
		{"", "", true},
		{"not a date", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDate(%q) = %v, want error", tt.input, d)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) error: %v", tt.input, err)
			}
			if got := d.String(); got != tt.want {
				t.Errorf("ParseDate(%q).String() = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDateAddDays(t *testing.T) {
	d := NewDate(2025, time.January, 30)

	if got := d.AddDays(3).String(); got != "2025-02-02" {
		t.Errorf("AddDays(3) = %s, want 2025-02-02", got)
	}
	if got := d.AddDays(-30).String(); got != "2024-12-31" {
		t.Errorf("AddDays(-30) = %s, want 2024-12-31", got)
	}
	if got := d.AddDays(0); !got.Equal(d) {
		t.Errorf("AddDays(0) = %s, want %s", got, d)
	}
}

func TestDateDaysSince(t *testing.T) {
	a := NewDate(2025, time.January, 1)
	b := NewDate(2025, time.March, 1)

	if got := b.DaysSince(a); got != 59 {
		t.Errorf("DaysSince = %d, want 59", got)
	}
	if got := a.DaysSince(b); got != -59 {
		t.Errorf("reverse DaysSince = %d, want -59", got)
	}
	if got := a.DaysSince(a); got != 0 {
		t.Errorf("self DaysSince = %d, want 0", got)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2025, time.July, 9)

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"2025-07-09"` {
		t.Fatalf("Marshal = %s, want \"2025-07-09\"", data)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("round trip = %s, want %s", back, d)
	}
}

func TestDateUnmarshalRejectsMalformed(t *testing.T) {
	for _, input := range []string{`"2025/01/03"`, `20250103`, `null`, `"yesterday"`, `{"y":2025}`} {
		var d Date
		if err := json.Unmarshal([]byte(input), &d); err == nil {
			t.Errorf("Unmarshal(%s) accepted, want error", input)
		}
	}
}
