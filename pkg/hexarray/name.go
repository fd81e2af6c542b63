package hexarray

import (
	"path/filepath"
	"strings"
)

// BaseName returns the file name of path without its final extension.
// Leading dots do not start an extension, so ".bashrc" is returned whole.
func BaseName(path string) string {
	base := filepath.Base(path)
	i := strings.LastIndexByte(base, '.')
	if i <= 0 || strings.TrimLeft(base[:i], ".") == "" {
		return base
	}
	return base[:i]
}

// OutputPath returns the sibling "<base>.c" path for an input file.
func OutputPath(input string) string {
	return filepath.Join(filepath.Dir(input), BaseName(input)+".c")
}

// Identifier turns name into a valid C identifier: every byte outside
// [A-Za-z0-9_] becomes '_' and a leading digit gets a '_' prefix.
func Identifier(name string) string {
	if name == "" {
		return "_"
	}
	b := []byte(name)
	for i, c := range b {
		if !isIdentByte(c) {
			b[i] = '_'
		}
	}
	if b[0] >= '0' && b[0] <= '9' {
		return "_" + string(b)
	}
	return string(b)
}

func isIdentByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
