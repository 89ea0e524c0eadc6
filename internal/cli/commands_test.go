package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCmd executes the root command with the given args, capturing output
// and resetting flag state afterwards so tests don't leak into each other.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	defer func() {
		moveDryRun = false
		moveForce = false
		moveIgnoreErrors = false
		moveVerbose = false
		lsLong = false
	}()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// chdir switches to dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get current directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir to %s: %v", dir, err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(old)
	})
}

func writeTestFile(t *testing.T, dir, rel string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create parent dirs: %v", err)
	}
	if err := os.WriteFile(path, []byte("content of "+rel+"\n"), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
}

func TestCommands_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	if _, err := runCmd(t, "init"); err != nil {
		t.Fatalf("init error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".trackmv", "index.json")); err != nil {
		t.Fatalf("init should create the index file: %v", err)
	}

	writeTestFile(t, dir, "a.txt")
	writeTestFile(t, dir, "docs/readme.md")

	if _, err := runCmd(t, "add", "a.txt", "docs"); err != nil {
		t.Fatalf("add error = %v", err)
	}

	out, err := runCmd(t, "ls")
	if err != nil {
		t.Fatalf("ls error = %v", err)
	}
	if out != "a.txt\ndocs/readme.md\n" {
		t.Errorf("ls output = %q, want tracked paths in order", out)
	}

	// Dry run reports the plan without touching anything.
	out, err = runCmd(t, "mv", "--dry-run", "a.txt", "b.txt")
	if err != nil {
		t.Fatalf("mv --dry-run error = %v", err)
	}
	if !strings.Contains(out, "Adding   : b.txt") || !strings.Contains(out, "Deleting : a.txt") {
		t.Errorf("dry-run output = %q, want adding/deleting summary", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.txt")); err != nil {
		t.Fatal("dry run must not move the file")
	}

	if _, err := runCmd(t, "mv", "a.txt", "b.txt"); err != nil {
		t.Fatalf("mv error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "b.txt")); err != nil {
		t.Fatal("mv should move the file on disk")
	}

	if _, err := runCmd(t, "mv", "docs", "notes"); err != nil {
		t.Fatalf("mv directory error = %v", err)
	}

	out, err = runCmd(t, "ls")
	if err != nil {
		t.Fatalf("ls error = %v", err)
	}
	if out != "b.txt\nnotes/readme.md\n" {
		t.Errorf("ls output = %q, want renamed paths", out)
	}

	if _, err := runCmd(t, "rm", "b.txt"); err != nil {
		t.Fatalf("rm error = %v", err)
	}
	out, _ = runCmd(t, "ls")
	if out != "notes/readme.md\n" {
		t.Errorf("ls output = %q, want only the remaining path", out)
	}
}

func TestMove_UntrackedSourceFails(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	if _, err := runCmd(t, "init"); err != nil {
		t.Fatalf("init error = %v", err)
	}
	writeTestFile(t, dir, "loose.txt")

	_, err := runCmd(t, "mv", "loose.txt", "dest.txt")
	if err == nil {
		t.Fatal("moving an untracked file should fail")
	}
	if !strings.Contains(err.Error(), "not under version control") {
		t.Errorf("error = %v, want not-under-version-control reason", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "loose.txt")); statErr != nil {
		t.Error("rejected move must not touch the file")
	}
}

func TestInit_FailsWhenAlreadyInitialized(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	if _, err := runCmd(t, "init"); err != nil {
		t.Fatalf("first init error = %v", err)
	}
	if _, err := runCmd(t, "init"); err == nil {
		t.Fatal("second init should fail")
	}
}

func TestCommands_OutsideWorkingTree(t *testing.T) {
	chdir(t, t.TempDir())

	if _, err := runCmd(t, "ls"); err == nil {
		t.Fatal("ls outside a working tree should fail")
	}
}

func TestMove_ReadsIgnoreErrorsFromConfig(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	if _, err := runCmd(t, "init"); err != nil {
		t.Fatalf("init error = %v", err)
	}
	cfgPath := filepath.Join(dir, ".trackmv", "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("move:\n  ignore_errors: true\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	writeTestFile(t, dir, "a.txt")
	writeTestFile(t, dir, "untracked.txt")
	if _, err := runCmd(t, "add", "a.txt"); err != nil {
		t.Fatalf("add error = %v", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "dest"), 0755); err != nil {
		t.Fatalf("failed to create dest dir: %v", err)
	}

	// The untracked source would abort the whole move without the
	// config default kicking in.
	if _, err := runCmd(t, "mv", "untracked.txt", "a.txt", "dest"); err != nil {
		t.Fatalf("mv error = %v, want skipped pair via config default", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "dest", "a.txt")); err != nil {
		t.Error("tracked source should still be moved")
	}
}
