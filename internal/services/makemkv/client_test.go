package makemkv

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type scriptedExecutor struct {
	lines   []string
	err     error
	gotArgs []string
	onRun   func(args []string)
}

func (s *scriptedExecutor) Run(_ context.Context, _ string, args []string, onLine func(string)) error {
	s.gotArgs = args
	if s.onRun != nil {
		s.onRun(args)
	}
	for _, line := range s.lines {
		onLine(line)
	}
	return s.err
}

func TestRipReportsProgressAndReturnsPath(t *testing.T) {
	dir := t.TempDir()
	exec := &scriptedExecutor{
		lines: []string{
			`PRGC:5057,0,"Saving to MKV file"`,
			"PRGV:0,32768,65536",
			"PRGV:0,65536,65536",
		},
		onRun: func(args []string) {
			// Simulate MakeMKV writing the title output.
			if err := os.WriteFile(filepath.Join(dir, "title_t00.mkv"), []byte("mkv"), 0o644); err != nil {
				t.Fatal(err)
			}
		},
	}
	client, err := New("makemkvcon", 0, WithExecutor(exec))
	if err != nil {
		t.Fatal(err)
	}

	var updates []ProgressUpdate
	path, err := client.Rip(context.Background(), "/dev/sr0", 0, dir, "title_t00.mkv", func(u ProgressUpdate) {
		updates = append(updates, u)
	})
	if err != nil {
		t.Fatalf("Rip: %v", err)
	}
	if path != filepath.Join(dir, "title_t00.mkv") {
		t.Fatalf("path = %q", path)
	}
	if len(updates) != 3 {
		t.Fatalf("updates = %d, want 3", len(updates))
	}
	if updates[0].Stage != "Saving to MKV file" {
		t.Fatalf("stage = %q", updates[0].Stage)
	}
	if updates[2].Percent != 100 {
		t.Fatalf("final percent = %v", updates[2].Percent)
	}
	joined := strings.Join(exec.gotArgs, " ")
	if !strings.Contains(joined, "mkv dev:/dev/sr0 0 "+dir) {
		t.Fatalf("args = %q", joined)
	}
	if !strings.Contains(joined, "--progress=-same") {
		t.Fatalf("progress flag missing from %q", joined)
	}
}

func TestRipMissingOutputFails(t *testing.T) {
	client, err := New("makemkvcon", 0, WithExecutor(&scriptedExecutor{}))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.Rip(context.Background(), "", 0, t.TempDir(), "title_t00.mkv", nil); err == nil {
		t.Fatal("expected error when no output is produced")
	}
}

func TestRipRejectsNegativeTitle(t *testing.T) {
	client, err := New("makemkvcon", 0, WithExecutor(&scriptedExecutor{}))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.Rip(context.Background(), "", -1, t.TempDir(), "x.mkv", nil); err == nil {
		t.Fatal("expected error for negative title id")
	}
}

func TestParseProgress(t *testing.T) {
	update, ok := parseProgress("PRGV:10,512,1024")
	if !ok || update.Percent != 50 {
		t.Fatalf("update = %+v ok=%v", update, ok)
	}
	if _, ok := parseProgress("MSG:1005,0,1,..."); ok {
		t.Fatal("MSG lines are not progress")
	}
	if _, ok := parseProgress("PRGV:10,512,0"); ok {
		t.Fatal("zero max must be rejected")
	}
}

func TestNewRequiresBinary(t *testing.T) {
	if _, err := New("  ", 0); err == nil {
		t.Fatal("expected error for empty binary")
	}
}
