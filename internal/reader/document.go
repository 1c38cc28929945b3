package reader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
)

func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// splitLines turns file contents into display lines. A document always has
// at least one line.
func splitLines(src string) []string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.TrimSuffix(src, "\n")
	return strings.Split(src, "\n")
}

func renderMarkdown(input string, width int) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", nil
	}
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithWordWrap(width),
		glamour.WithStandardStyle("dark"),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(input)
}

// layoutLines produces the lines shown for src. Markdown is rendered when
// enabled; a rendering failure falls back to the raw text.
func layoutLines(path, src string, markdown bool, width int) ([]string, error) {
	if markdown && isMarkdown(path) {
		out, err := renderMarkdown(src, width)
		if err != nil {
			return splitLines(src), fmt.Errorf("render %s: %w", filepath.Base(path), err)
		}
		return splitLines(strings.Trim(out, "\n")), nil
	}
	return splitLines(src), nil
}
