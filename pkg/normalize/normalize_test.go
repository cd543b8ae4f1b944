package normalize

import (
	"errors"
	"testing"
	_ "time/tzdata"
)

func TestNormalize_AcceptedLayouts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "exif colon layout",
			input: "2023:06:15 12:00:00",
			want:  "2023:06:15 12:00:00",
		},
		{
			name:  "dash layout",
			input: "2023-06-15 12:00:00",
			want:  "2023:06:15 12:00:00",
		},
		{
			name:  "slash layout",
			input: "2023/06/15 12:00:00",
			want:  "2023:06:15 12:00:00",
		},
		{
			name:  "mdy layout",
			input: "06/15/2023 12:00:00",
			want:  "2023:06:15 12:00:00",
		},
		{
			name:  "dmy layout when mdy cannot match",
			input: "15/06/2023 12:00:00",
			want:  "2023:06:15 12:00:00",
		},
		{
			name:  "date only",
			input: "2023-06-15",
			want:  "2023:06:15 00:00:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input, "UTC", "UTC", DefaultOptions())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_AmbiguousDateDefaultsToMDY(t *testing.T) {
	// Both day and month are <= 12, so either slash layout could match.
	// The MDY layout is tried first, so this must be read as March 4.
	got, err := Normalize("03/04/2023 10:00:00", "UTC", "UTC", DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2023:03:04 10:00:00" {
		t.Errorf("got %q, want MM/DD interpretation %q", got, "2023:03:04 10:00:00")
	}
}

func TestNormalize_DMYOrder(t *testing.T) {
	got, err := Normalize("03/04/2023 10:00:00", "UTC", "UTC", Options{DateOrder: OrderDMY})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2023:04:03 10:00:00" {
		t.Errorf("got %q, want DD/MM interpretation %q", got, "2023:04:03 10:00:00")
	}
}

func TestNormalize_DSTAwareConversion(t *testing.T) {
	// June is EDT (UTC-4), not the current or standard offset.
	got, err := Normalize("2023:06:15 12:00:00", "UTC", "America/New_York", DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2023:06:15 08:00:00" {
		t.Errorf("got %q, want %q", got, "2023:06:15 08:00:00")
	}
}

func TestNormalize_WinterOffset(t *testing.T) {
	// January is EST (UTC-5).
	got, err := Normalize("2023:01:15 12:00:00", "UTC", "America/New_York", DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2023:01:15 07:00:00" {
		t.Errorf("got %q, want %q", got, "2023:01:15 07:00:00")
	}
}

func TestNormalize_SourceTimezoneIsApplied(t *testing.T) {
	// Noon in New York in June is 16:00 UTC.
	got, err := Normalize("2023:06:15 12:00:00", "America/New_York", "UTC", DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2023:06:15 16:00:00" {
		t.Errorf("got %q, want %q", got, "2023:06:15 16:00:00")
	}
}

func TestNormalize_Failures(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sourceTZ string
		targetTZ string
		wantErr  error
	}{
		{
			name:     "not a date",
			input:    "not-a-date",
			sourceTZ: "UTC",
			targetTZ: "UTC",
			wantErr:  ErrUnparseable,
		},
		{
			name:     "trailing text rejected",
			input:    "2023-06-15 12:00:00 UTC",
			sourceTZ: "UTC",
			targetTZ: "UTC",
			wantErr:  ErrUnparseable,
		},
		{
			name:     "invalid target timezone",
			input:    "2023:06:15 12:00:00",
			sourceTZ: "UTC",
			targetTZ: "Mars/Phobos",
			wantErr:  ErrUnknownTimezone,
		},
		{
			name:     "invalid source timezone",
			input:    "2023:06:15 12:00:00",
			sourceTZ: "Nowhere/Special",
			targetTZ: "UTC",
			wantErr:  ErrUnknownTimezone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.input, tt.sourceTZ, tt.targetTZ, DefaultOptions())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Normalize(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestIsDateToken(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"2023-06-15", true},
		{"2023-13-01", false},
		{"2023-06-15T12:00:00", false},
		{"2023-6-15", false},
		{"hello", false},
		{"2023/06/15", false},
	}

	for _, tt := range tests {
		if got := IsDateToken(tt.token); got != tt.want {
			t.Errorf("IsDateToken(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}
