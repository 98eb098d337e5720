package curve

// Easing names the timing curve applied to a segment's progress.
type Easing string

const (
	Linear    Easing = "linear"
	EaseIn    Easing = "easeIn"
	EaseOut   Easing = "easeOut"
	EaseInOut Easing = "easeInOut"
)

// Ease maps t in [0,1] through the given curve. Unknown kinds fall back to linear.
func Ease(t float64, kind Easing) float64 {
	t = clampUnit(t)
	switch kind {
	case EaseIn:
		return t * t * t
	case EaseOut:
		inv := 1 - t
		return 1 - inv*inv*inv
	case EaseInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		u := -2*t + 2
		return 1 - u*u/2
	default:
		return t
	}
}

// ParseEasing accepts the canonical names and their dashed or underscored
// spellings, returning Linear for anything unknown.
func ParseEasing(s string) Easing {
	switch Easing(s) {
	case EaseIn, EaseOut, EaseInOut:
		return Easing(s)
	}
	switch s {
	case "ease-in", "ease_in":
		return EaseIn
	case "ease-out", "ease_out":
		return EaseOut
	case "ease-in-out", "ease_in_out":
		return EaseInOut
	}
	return Linear
}

// UnmarshalText lets metadata decoders (YAML, TOML and JSON) accept every
// spelling ParseEasing does.
func (e *Easing) UnmarshalText(text []byte) error {
	*e = ParseEasing(string(text))
	return nil
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
