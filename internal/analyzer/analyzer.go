package analyzer

import "github.com/ivlev/cursorcast/internal/recording"

// Analyzer turns a pointer timeline into zoom sections
type Analyzer interface {
	Analyze(events []recording.MouseEvent) []recording.ZoomSection
}

// staticFrame never zooms
type staticFrame struct{}

func (staticFrame) Analyze([]recording.MouseEvent) []recording.ZoomSection {
	return nil
}
