package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/lvtools/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trees struct {
	src string
	dst string
}

func newTrees(t *testing.T) trees {
	t.Helper()
	base := t.TempDir()
	tr := trees{src: filepath.Join(base, "src"), dst: filepath.Join(base, "dst")}

	testutils.WriteTree(t, tr.src, map[string]string{
		"ui.c":             "int ui;",
		"ui.h":             "#pragma once",
		"screens/home.cpp": "// home",
		"notes.md":         "skip me",
	})
	testutils.WriteTree(t, tr.dst, map[string]string{
		"stale.c":  "old",
		"keep.txt": "untracked",
	})
	return tr
}

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestUimirror_PositionalArgs(t *testing.T) {
	tr := newTrees(t)

	code, stdout, stderr := execute(t, tr.src, tr.dst)
	require.Equal(t, 0, code, stderr)

	assert.FileExists(t, filepath.Join(tr.dst, "ui.c"))
	assert.FileExists(t, filepath.Join(tr.dst, "ui.h"))
	assert.FileExists(t, filepath.Join(tr.dst, "screens", "home.cpp"))
	assert.FileExists(t, filepath.Join(tr.dst, "keep.txt"))
	assert.NoFileExists(t, filepath.Join(tr.dst, "notes.md"))
	assert.NoFileExists(t, filepath.Join(tr.dst, "stale.c"))

	assert.Contains(t, stdout, "removed stale.c\n")
	assert.Contains(t, stdout, "copied  screens/home.cpp\n")
	assert.Contains(t, stdout, "3 copied")
}

func TestUimirror_ConfigFileAndFlags(t *testing.T) {
	tr := newTrees(t)
	cfgPath := filepath.Join(t.TempDir(), "mirror.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("source: "+tr.src+"\ndestination: /nowhere\nextensions: [.c]\n"), 0o644))

	code, _, stderr := execute(t, "--config", cfgPath, "--dst", tr.dst, "--ext", ".h", "--quiet")
	require.Equal(t, 0, code, stderr)

	assert.FileExists(t, filepath.Join(tr.dst, "ui.h"))
	assert.NoFileExists(t, filepath.Join(tr.dst, "ui.c"), "flag extensions replace the file's list")
	assert.FileExists(t, filepath.Join(tr.dst, "stale.c"), "untracked extensions are left alone")
}

func TestUimirror_DryRun(t *testing.T) {
	tr := newTrees(t)

	code, stdout, stderr := execute(t, tr.src, tr.dst, "--dry-run", "--report", "markdown")
	require.Equal(t, 0, code, stderr)

	assert.Contains(t, stdout, "dry run")
	assert.Contains(t, stdout, "stale.c")
	assert.FileExists(t, filepath.Join(tr.dst, "stale.c"))
	assert.NoFileExists(t, filepath.Join(tr.dst, "ui.c"))
}

func TestUimirror_MetricsFile(t *testing.T) {
	tr := newTrees(t)
	prom := filepath.Join(t.TempDir(), "uimirror.prom")

	code, _, stderr := execute(t, tr.src, tr.dst, "--quiet", "--metrics-file", prom)
	require.Equal(t, 0, code, stderr)

	data, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(data), "uimirror_files_copied_total 3")
	assert.Contains(t, string(data), "uimirror_files_removed_total 1")
}

func TestUimirror_ExitCodes(t *testing.T) {
	tr := newTrees(t)
	file := filepath.Join(tr.src, "ui.c")

	tests := []struct {
		name    string
		args    []string
		code    int
		message string
	}{
		{"missing source", []string{filepath.Join(tr.src, "nope"), tr.dst}, 3, "input missing"},
		{"source is a file", []string{file, tr.dst}, 2, "not a directory"},
		{"no destination", []string{tr.src}, 2, "destination"},
		{"same directories", []string{tr.src, tr.src}, 2, "destination"},
		{"too many args", []string{tr.src, tr.dst, "extra"}, 2, "invalid usage"},
		{"watch with dry run", []string{tr.src, tr.dst, "--watch", "--dry-run"}, 2, "cannot be used together"},
		{"bad report format", []string{tr.src, tr.dst, "--report", "json"}, 2, "unknown report format"},
		{"missing config file", []string{"--config", filepath.Join(tr.src, "none.yaml")}, 3, "config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := execute(t, tt.args...)
			assert.Equal(t, tt.code, code, stderr)
			assert.Contains(t, stderr, tt.message)
		})
	}
}

func TestUimirror_Watch(t *testing.T) {
	tr := newTrees(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var stdout, stderr bytes.Buffer
	done := make(chan int, 1)
	go func() {
		done <- run(ctx, []string{tr.src, tr.dst, "--watch"}, &stdout, &stderr)
	}()

	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(tr.dst, "ui.c"))
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(tr.src, "added.h"), []byte("#define ADDED 1"), 0o644))
	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(tr.dst, "added.h"))
		return err == nil
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case code := <-done:
		assert.Equal(t, 0, code)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
	assert.Contains(t, stdout.String(), ">>> Watching")
	assert.Contains(t, stdout.String(), ">>> Change detected in 'added.h'.")
}

func TestVersionCmd(t *testing.T) {
	code, stdout, _ := execute(t, "version")
	require.Equal(t, 0, code)
	assert.Regexp(t, `^uimirror version \d+\.\d+\.\d+\n$`, stdout)
}
