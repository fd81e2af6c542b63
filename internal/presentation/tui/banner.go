package tui

import (
	"fmt"
	"strings"
)

var bannerPalette = []string{"#818cf8", "#a78bfa", "#c084fc", "#e879f9", "#f472b6", "#fb7185"}

// Banner prints the tool name with a gradient, followed by its version.
// Watch mode shows it once before the first run.
func (p *Printer) Banner(tool, version string) {
	var b strings.Builder
	for i, r := range tool {
		color := p.out.Color(bannerPalette[i%len(bannerPalette)])
		b.WriteString(p.out.String(string(r)).Foreground(color).Bold().String())
	}

	fmt.Fprintln(p.w)
	fmt.Fprintf(p.w, "  %s %s\n", b.String(), p.out.String(strings.TrimSpace(version)).Faint())
	fmt.Fprintln(p.w)
}
