// Package smooth implements critically damped "smooth damp" springs that
// turn stepwise targets into continuous, overshoot-free motion.
//
// The update is closed form and depends only on the sequence of deltaTime
// values it is driven with, so preview and export produce identical output
// as long as both step at the same fixed frame delta.
package smooth

import "math"

// convergenceEpsilon is the distance and speed below which a spring snaps to its target.
const convergenceEpsilon = 1e-4

const minSmoothTime = 1e-4

// step performs one critically damped update and returns the new position
// and velocity. omega is 2/smoothTime.
func step(current, target, velocity, omega, dt float64) (float64, float64) {
	x := omega * dt
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)
	change := current - target
	temp := (velocity + omega*change) * dt
	velocity = (velocity - omega*temp) * exp
	return target + (change+temp)*exp, velocity
}

func omegaFor(smoothTime float64) float64 {
	return 2 / math.Max(minSmoothTime, smoothTime)
}

// SmoothValue is a one-dimensional spring.
type SmoothValue struct {
	Current    float64
	Target     float64
	Velocity   float64
	SmoothTime float64 // seconds to roughly reach the target
}

func NewSmoothValue(initial, smoothTime float64) *SmoothValue {
	return &SmoothValue{
		Current:    initial,
		Target:     initial,
		SmoothTime: smoothTime,
	}
}

func (s *SmoothValue) SetTarget(target float64) {
	s.Target = target
}

// Update advances the spring by dt seconds and returns the new value.
func (s *SmoothValue) Update(dt float64) float64 {
	if dt <= 0 {
		return s.Current
	}
	before := s.Current
	next, vel := step(s.Current, s.Target, s.Velocity, omegaFor(s.SmoothTime), dt)

	// never pass the target
	if (s.Target-before > 0) == (next > s.Target) {
		next, vel = s.Target, 0
	}

	s.Current, s.Velocity = next, vel
	if math.Abs(s.Current-s.Target) < convergenceEpsilon && math.Abs(s.Velocity) < convergenceEpsilon {
		s.Current = s.Target
		s.Velocity = 0
	}
	return s.Current
}

// SmoothPosition2D is a two-dimensional spring sharing one smoothing time
// across both axes.
type SmoothPosition2D struct {
	X, Y             float64
	TargetX, TargetY float64
	VX, VY           float64
	SmoothTime       float64
}

func NewSmoothPosition2D(x, y, smoothTime float64) *SmoothPosition2D {
	return &SmoothPosition2D{
		X:          x,
		Y:          y,
		TargetX:    x,
		TargetY:    y,
		SmoothTime: smoothTime,
	}
}

func (s *SmoothPosition2D) SetTarget(x, y float64) {
	s.TargetX, s.TargetY = x, y
}

// Update advances the spring by dt seconds and returns the new position.
func (s *SmoothPosition2D) Update(dt float64) (float64, float64) {
	if dt <= 0 {
		return s.X, s.Y
	}
	omega := omegaFor(s.SmoothTime)
	origX, origY := s.X, s.Y
	nx, vx := step(s.X, s.TargetX, s.VX, omega, dt)
	ny, vy := step(s.Y, s.TargetY, s.VY, omega, dt)

	// overshoot shows up as the before/after error vectors pointing in
	// opposite directions
	toTargetX, toTargetY := s.TargetX-origX, s.TargetY-origY
	pastX, pastY := nx-s.TargetX, ny-s.TargetY
	if toTargetX*pastX+toTargetY*pastY > 0 {
		nx, ny = s.TargetX, s.TargetY
		vx, vy = 0, 0
	}

	s.X, s.Y, s.VX, s.VY = nx, ny, vx, vy
	if math.Hypot(s.X-s.TargetX, s.Y-s.TargetY) < convergenceEpsilon && math.Hypot(s.VX, s.VY) < convergenceEpsilon {
		s.X, s.Y = s.TargetX, s.TargetY
		s.VX, s.VY = 0, 0
	}
	return s.X, s.Y
}

func (s *SmoothPosition2D) Velocity() (float64, float64) {
	return s.VX, s.VY
}

// AdaptiveSmoothTime shortens the smoothing time as speed (px/s) rises past
// threshold, never going below floor. Fast motion gets less lag.
func AdaptiveSmoothTime(base, floor, speed, threshold float64) float64 {
	if floor > base {
		floor = base
	}
	if threshold <= 0 || speed <= threshold {
		return base
	}
	return math.Max(floor, base*threshold/speed)
}
