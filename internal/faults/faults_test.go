package faults

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	_, statErr := os.Stat(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, statErr)

	tests := []struct {
		name string
		err  error
		want Kind
		code int
	}{
		{"nil", nil, KindUnknown, 1},
		{"plain", errors.New("boom"), KindUnknown, 1},
		{"missing file", statErr, KindNotFound, 3},
		{"wrapped missing", fmt.Errorf("read input: %w", fs.ErrNotExist), KindNotFound, 3},
		{"permission", &fs.PathError{Op: "open", Path: "x", Err: syscall.EACCES}, KindPermission, 4},
		{"read-only fs", &fs.PathError{Op: "open", Path: "x", Err: syscall.EROFS}, KindPermission, 4},
		{"disk full", fmt.Errorf("copy: %w", &fs.PathError{Op: "write", Path: "x", Err: syscall.ENOSPC}), KindNoSpace, 5},
		{"usage", Usagef("bad flag %q", "--x"), KindUsage, 2},
		{"usage wrapping fs", Usage(fs.ErrNotExist), KindUsage, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind := Classify(tt.err)
			assert.Equal(t, tt.want, kind)
			assert.Equal(t, tt.code, kind.ExitCode())
		})
	}
}

func TestUsageNil(t *testing.T) {
	assert.NoError(t, Usage(nil))
}

func TestMessage(t *testing.T) {
	err := fmt.Errorf("open hello.txt: %w", fs.ErrNotExist)
	assert.Equal(t, "input missing: open hello.txt: file does not exist", Message(err))
}
