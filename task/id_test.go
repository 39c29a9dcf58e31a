package task

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		input   string
		want    ID
		wantErr error
	}{
		{"1.1", "1.1", nil},
		{"12.34", "12.34", nil},
		{" 1.2 ", "1.2", nil},
		{"", "", ErrInvalidID},
		{"1", "", ErrInvalidID},
		{"1.2.3", "", ErrInvalidID},
		{"a.b", "", ErrInvalidID},
		{"task 1.1", "", ErrInvalidID},
	}

	for _, tt := range tests {
		got, err := ParseID(tt.input)
		if tt.wantErr == nil {
			if err != nil {
				t.Errorf("ParseID(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		} else if !errors.Is(err, tt.wantErr) {
			t.Errorf("ParseID(%q) = %v, want %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestExtractIDs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []ID
	}{
		{"comma separated", "1.1, 1.2", []ID{"1.1", "1.2"}},
		{"prose", "depends on task 1.1 and 2.3", []ID{"1.1", "2.3"}},
		{"none", "none", nil},
		{"empty", "", nil},
		{"duplicates", "1.1, 1.1, 1.2", []ID{"1.1", "1.2"}},
		{"no ids", "all of the above", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractIDs(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractIDs(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr error
	}{
		{"complete", StatusComplete, nil},
		{"COMPLETE", StatusComplete, nil},
		{"in_progress", StatusInProgress, nil},
		{"in progress", StatusInProgress, nil},
		{"In-Progress", StatusInProgress, nil},
		{" blocked ", StatusBlocked, nil},
		{"incomplete", StatusIncomplete, nil},
		{"done", "", ErrInvalidStatus},
		{"", "", ErrInvalidStatus},
	}

	for _, tt := range tests {
		got, err := ParseStatus(tt.input)
		if tt.wantErr == nil {
			if err != nil {
				t.Errorf("ParseStatus(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseStatus(%q) = %q, want %q", tt.input, got, tt.want)
			}
		} else if !errors.Is(err, tt.wantErr) {
			t.Errorf("ParseStatus(%q) = %v, want %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestStatusMarkerRoundTrip(t *testing.T) {
	for _, status := range ValidStatuses() {
		got, ok := statusForMarker(status.Marker())
		if !ok || got != status {
			t.Errorf("marker round trip failed for %s: got %s, ok=%v", status, got, ok)
		}
	}
}
