package analyzer

import (
	"fmt"

	"github.com/ivlev/cursorcast/internal/config"
)

// NewAnalyzer creates an analyzer based on the specified variant
func NewAnalyzer(variant string, zoom config.ZoomConfig, width, height int, duration float64) (Analyzer, error) {
	switch variant {
	case "dwell", "":
		a := NewDwellAnalyzer(width, height, zoom.Level)
		if zoom.DeadZone > 0 {
			a.DeadZone = zoom.DeadZone
		}
		if zoom.MinStaticDuration > 0 {
			a.MinStaticDuration = zoom.MinStaticDuration
		}
		a.Duration = duration
		return a, nil
	case "none":
		return staticFrame{}, nil
	default:
		return nil, fmt.Errorf("unknown analyzer variant: %s", variant)
	}
}
