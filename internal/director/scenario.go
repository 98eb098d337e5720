package director

import "errors"

var ErrZoomRegionUnavailable = errors.New("zoom region unavailable")

// ZoomRegion is the smoothed camera for one output frame. Center and crop
// are in source-video pixels.
type ZoomRegion struct {
	Timestamp  float64 // ms
	CenterX    float64
	CenterY    float64
	CropWidth  float64
	CropHeight float64
	Scale      float64 // 1.0 = full frame
}

// NeutralRegion shows the whole frame.
func NeutralRegion(timestamp float64, width, height int) ZoomRegion {
	return ZoomRegion{
		Timestamp:  timestamp,
		CenterX:    float64(width) / 2,
		CenterY:    float64(height) / 2,
		CropWidth:  float64(width),
		CropHeight: float64(height),
		Scale:      1,
	}
}

// RegionAt returns the region for frame i.
func RegionAt(regions []ZoomRegion, i int) (ZoomRegion, error) {
	if i < 0 || i >= len(regions) {
		return ZoomRegion{}, ErrZoomRegionUnavailable
	}
	return regions[i], nil
}
