package frames

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTransformRejectsMissingOutputDir(t *testing.T) {
	dir := t.TempDir()
	err := Transform(Config{
		RecordingPath: "unused",
		OutputDir:     filepath.Join(dir, "does-not-exist"),
		SelfExe:       "unused",
		TmuxBin:       "tmux",
		SessionName:   "termrec-test",
	}, nil)
	if err == nil {
		t.Fatal("expected an error for a missing output directory")
	}
}

func TestTransformRejectsOutputDirThatIsAFile(t *testing.T) {
	dir := t.TempDir()
	notADir := filepath.Join(dir, "a-file")
	if err := os.WriteFile(notADir, []byte("x"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	err := Transform(Config{
		RecordingPath: "unused",
		OutputDir:     notADir,
		SelfExe:       "unused",
		TmuxBin:       "tmux",
		SessionName:   "termrec-test",
	}, nil)
	if err == nil {
		t.Fatal("expected an error when OutputDir is a regular file")
	}
}
