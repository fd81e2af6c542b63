package hexarray

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultHeader is included at the top of every generated file.
	DefaultHeader = "lvgl.h"
	// LineWidth is the maximum width of a wrapped line of literals.
	LineWidth = 96

	indent = "    "
)

// Literals formats each byte as a lowercase, unpadded hex literal ("0x0", "0x41").
func Literals(data []byte) []string {
	lits := make([]string, len(data))
	for i, b := range data {
		lits[i] = "0x" + strconv.FormatUint(uint64(b), 16)
	}
	return lits
}

// Wrap joins literals with ", " and breaks the result into lines of at most
// width columns. Lines only break at the space after a comma, so a literal
// is never split.
func Wrap(literals []string, width int) []string {
	var (
		lines []string
		cur   strings.Builder
	)
	for i, lit := range literals {
		word := lit
		if i < len(literals)-1 {
			word += ","
		}
		if cur.Len() > 0 && cur.Len()+1+len(word) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

// Render produces the C source for an array called name holding data.
// Only the first line of the wrapped body carries the template indent.
func Render(name, header string, data []byte) string {
	if header == "" {
		header = DefaultHeader
	}
	body := strings.Join(Wrap(Literals(data), LineWidth), "\n")

	var b strings.Builder
	fmt.Fprintf(&b, "#include \"%s\"\n\n", header)
	fmt.Fprintf(&b, "const uint8_t %s[] = {\n", name)
	b.WriteString(indent + body + "\n")
	b.WriteString("};\n")
	fmt.Fprintf(&b, "const size_t %s_len = sizeof(%s);\n", name, name)
	return b.String()
}
