package cursor

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed svg/*.svg
var glyphs embed.FS

// fillPlaceholder is the body colour used by the embedded glyphs.
const fillPlaceholder = "#000000"

// SVG returns the embedded glyph for a shape with its body filled in color.
// An empty color keeps the stock black body.
func SVG(shape Shape, color string) ([]byte, error) {
	b, err := glyphs.ReadFile("svg/" + string(shape) + ".svg")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrMissingAsset, shape)
	}
	if color == "" || strings.EqualFold(color, fillPlaceholder) {
		return b, nil
	}
	return []byte(strings.ReplaceAll(string(b), fillPlaceholder, color)), nil
}

// ExtractAssets writes every embedded glyph into dir as <shape>.svg.
func ExtractAssets(dir, color string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, sh := range Shapes {
		b, err := SVG(sh, color)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, string(sh)+".svg"), b, 0644); err != nil {
			return fmt.Errorf("write glyph %s: %w", sh, err)
		}
	}
	return nil
}
