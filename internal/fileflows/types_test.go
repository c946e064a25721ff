package fileflows

import (
	"encoding/json"
	"testing"
)

func TestShrinkageGroup_SavedBytes(t *testing.T) {
	tests := []struct {
		name  string
		group ShrinkageGroup
		want  int64
	}{
		{"shrunk", ShrinkageGroup{OriginalSize: 1000, FinalSize: 400}, 600},
		{"grew", ShrinkageGroup{OriginalSize: 400, FinalSize: 1000}, 0},
		{"unchanged", ShrinkageGroup{OriginalSize: 500, FinalSize: 500}, 0},
		{"empty", ShrinkageGroup{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.group.SavedBytes(); got != tt.want {
				t.Fatalf("SavedBytes = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLibraryFileStatus_QueueSize(t *testing.T) {
	s := LibraryFileStatus{Unprocessed: 7, Processing: 2, Processed: 99, Failed: 3}
	if got := s.QueueSize(); got != 9 {
		t.Fatalf("QueueSize = %d, want 9 (unprocessed + processing only)", got)
	}
	if got := (LibraryFileStatus{}).QueueSize(); got != 0 {
		t.Fatalf("empty QueueSize = %d, want 0", got)
	}
}

func TestWorker_FileNameFallbackChain(t *testing.T) {
	tests := []struct {
		name   string
		worker Worker
		want   string
	}{
		{
			"current file wins",
			Worker{CurrentFile: "/media/a.mkv", RelativeFile: "a.mkv", LibraryFile: LibraryFileRef{Name: "A"}},
			"/media/a.mkv",
		},
		{
			"relative file next",
			Worker{RelativeFile: "b.mkv", LibraryFile: LibraryFileRef{Name: "B"}},
			"b.mkv",
		},
		{
			"library file last",
			Worker{LibraryFile: LibraryFileRef{Name: "C"}},
			"C",
		},
		{
			"whitespace ignored",
			Worker{CurrentFile: "  ", RelativeFile: "d.mkv"},
			"d.mkv",
		},
		{"nothing", Worker{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.worker.FileName(); got != tt.want {
				t.Fatalf("FileName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplayNames(t *testing.T) {
	f := LibraryFile{Name: "/media/show/e1.mkv", RelativePath: "show/e1.mkv"}
	if got := f.DisplayName(); got != "show/e1.mkv" {
		t.Fatalf("LibraryFile.DisplayName = %q", got)
	}
	f.RelativePath = ""
	if got := f.DisplayName(); got != "/media/show/e1.mkv" {
		t.Fatalf("LibraryFile.DisplayName fallback = %q", got)
	}

	p := ProcessingFile{Name: "/media/m.mkv", Relative: "m.mkv"}
	if got := p.DisplayName(); got != "m.mkv" {
		t.Fatalf("ProcessingFile.DisplayName = %q", got)
	}
}

func TestWorker_DecodesServerPayload(t *testing.T) {
	payload := `{
		"Uid": "w1",
		"NodeName": "internal",
		"CurrentFile": "/media/movie.mkv",
		"LibraryFile": {"Uid": "lf1", "Name": "movie.mkv"},
		"CurrentPart": 3,
		"TotalParts": 7,
		"CurrentPartPercent": 41.5
	}`
	var w Worker
	if err := json.Unmarshal([]byte(payload), &w); err != nil {
		t.Fatalf("unmarshal worker: %v", err)
	}
	if w.UID != "w1" || w.NodeName != "internal" {
		t.Fatalf("worker = %+v", w)
	}
	current, total := w.PartProgress()
	if current != 3 || total != 7 {
		t.Fatalf("PartProgress = %d/%d, want 3/7", current, total)
	}
	if w.LibraryFile.UID != "lf1" {
		t.Fatalf("nested library file = %+v", w.LibraryFile)
	}
}
