package mcpserver

import "testing"

func TestPositionFromURI(t *testing.T) {
	tests := []struct {
		uri    string
		want   int
		wantOK bool
	}{
		{"deck://slide/0/notes", 0, true},
		{"deck://slide/12/notes", 12, true},
		{"deck://slide//notes", 0, false},
		{"deck://slide/abc/notes", 0, false},
		{"deck://slides", 0, false},
		{"notes://page/3/blocks", 0, false},
	}
	for _, tt := range tests {
		got, ok := positionFromURI(tt.uri)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("positionFromURI(%q) = (%d, %v), want (%d, %v)",
				tt.uri, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSplitPaths(t *testing.T) {
	got := splitPaths(" /a/one.pdf, /b/two.pdf ,,")
	if len(got) != 2 || got[0] != "/a/one.pdf" || got[1] != "/b/two.pdf" {
		t.Errorf("splitPaths returned %v", got)
	}

	if got := splitPaths(""); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}

func TestGetInt(t *testing.T) {
	args := map[string]any{"from": float64(3), "label": "x"}
	if got := getInt(args, "from", -1); got != 3 {
		t.Errorf("getInt(from) = %d, want 3", got)
	}
	if got := getInt(args, "label", -1); got != -1 {
		t.Errorf("getInt on non-number should fall back, got %d", got)
	}
	if got := getInt(args, "missing", 7); got != 7 {
		t.Errorf("getInt(missing) = %d, want 7", got)
	}
}
