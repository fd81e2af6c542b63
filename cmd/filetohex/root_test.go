package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFiletohex_WritesSiblingFile(t *testing.T) {
	input := writeInput(t, "hello.txt", "AB")
	var stdout, stderr bytes.Buffer

	code := run([]string{input}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(filepath.Join(filepath.Dir(input), "hello.c"))
	require.NoError(t, err)
	assert.Equal(t, "#include \"lvgl.h\"\n\nconst uint8_t hello[] = {\n    0x41, 0x42\n};\nconst size_t hello_len = sizeof(hello);\n", string(data))
}

func TestFiletohex_FlagsAnywhere(t *testing.T) {
	input := writeInput(t, "note.txt", "A☃")
	var stdout, stderr bytes.Buffer

	code := run([]string{"--null-terminate", input, "--filter-character", "--stdout"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "    0x41, 0x0\n")
	assert.NoFileExists(t, filepath.Join(filepath.Dir(input), "note.c"))
}

func TestFiletohex_ExitCodes(t *testing.T) {
	tests := []struct {
		name    string
		args    func(t *testing.T) []string
		code    int
		message string
	}{
		{
			name:    "missing input",
			args:    func(t *testing.T) []string { return []string{filepath.Join(t.TempDir(), "nope.txt")} },
			code:    3,
			message: "input missing",
		},
		{
			name:    "no arguments",
			args:    func(t *testing.T) []string { return nil },
			code:    2,
			message: "invalid usage",
		},
		{
			name:    "unknown flag",
			args:    func(t *testing.T) []string { return []string{"--nope", "x.txt"} },
			code:    2,
			message: "unknown flag",
		},
		{
			name: "unencodable character",
			args: func(t *testing.T) []string {
				return []string{writeInput(t, "snow.txt", "☃")}
			},
			code:    2,
			message: "U+2603",
		},
		{
			name: "input is a C file",
			args: func(t *testing.T) []string {
				return []string{writeInput(t, "ui.c", "int x;")}
			},
			code:    2,
			message: "overwrite the input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args(t), &stdout, &stderr)
			assert.Equal(t, tt.code, code)
			assert.True(t, strings.HasPrefix(stderr.String(), "Error: "), stderr.String())
			assert.Contains(t, stderr.String(), tt.message)
		})
	}
}

func TestFiletohex_UTF8(t *testing.T) {
	input := writeInput(t, "snow.txt", "☃")
	var stdout, stderr bytes.Buffer

	code := run([]string{input, "--utf8", "--stdout", "--name", "icon"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "const uint8_t icon[] = {\n    0xe2, 0x98, 0x83\n};")
}

func TestVersionFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--version"}, &stdout, &stderr)
	require.Equal(t, 0, code)
	assert.Regexp(t, `^filetohex version \d+\.\d+\.\d+\n$`, stdout.String())
}

func TestFiletohex_ReservedLookingNames(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	for _, name := range []string{"version", "help", "completion"} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, os.WriteFile(name, []byte("A"), 0o644))

			var stdout, stderr bytes.Buffer
			code := run([]string{name}, &stdout, &stderr)
			require.Equal(t, 0, code, stderr.String())

			data, err := os.ReadFile(filepath.Join(dir, name+".c"))
			require.NoError(t, err)
			assert.Contains(t, string(data), "const uint8_t "+name+"[] = {\n    0x41\n};")
		})
	}
}
