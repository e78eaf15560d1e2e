package motion

import "math"

// Geometry bounds and increments
const (
	MinRadius     = 50
	MaxRadius     = 500
	RadiusStep    = 10
	DefaultRadius = 100

	MinStepAngle     = 5
	MaxStepAngle     = 90
	StepAngleStep    = 5
	DefaultStepAngle = 40

	// DefaultOffsetStep is the offset change applied per arrow key press
	DefaultOffsetStep = 0.2
)

// Screen is the size of the primary display in pixels
type Screen struct {
	Width  int
	Height int
}

// Center returns the screen center, truncated to whole pixels
func (s Screen) Center() (float64, float64) {
	return float64(s.Width / 2), float64(s.Height / 2)
}

// AspectRatio returns width divided by height
func (s Screen) AspectRatio() float64 {
	return float64(s.Width) / float64(s.Height)
}

// Offset shifts the circle center away from the screen center
type Offset struct {
	X float64
	Y float64
}

// Geometry describes the circular path
type Geometry struct {
	Radius    int
	StepAngle int
	Offset    Offset
}

// DefaultGeometry returns the geometry used at startup
func DefaultGeometry() Geometry {
	return Geometry{
		Radius:    DefaultRadius,
		StepAngle: DefaultStepAngle,
	}
}

// Target returns the cursor position for the given angle in degrees.
// The horizontal radius is stretched by the screen aspect ratio.
func (g Geometry) Target(s Screen, angle float64) (float64, float64) {
	cx, cy := s.Center()
	r := float64(g.Radius)
	rad := angle * math.Pi / 180
	x := cx + g.Offset.X + r*s.AspectRatio()*math.Cos(rad)
	y := cy + g.Offset.Y + r*math.Sin(rad)
	return x, y
}

// adjust steps radius and step angle together. Each parameter stops at its
// bound independently of the other.
func (g *Geometry) adjust(increase bool) {
	if increase {
		if g.StepAngle < MaxStepAngle {
			g.StepAngle += StepAngleStep
		}
		if g.Radius < MaxRadius {
			g.Radius += RadiusStep
		}
		return
	}

	if g.StepAngle > MinStepAngle {
		g.StepAngle -= StepAngleStep
	}
	if g.Radius > MinRadius {
		g.Radius -= RadiusStep
	}
}

func (g *Geometry) shift(dx, dy float64) {
	g.Offset.X = roundTenth(g.Offset.X + dx)
	g.Offset.Y = roundTenth(g.Offset.Y + dy)
}

// clamp forces radius and step angle into their bounds
func (g *Geometry) clamp() {
	g.Radius = min(max(g.Radius, MinRadius), MaxRadius)
	g.StepAngle = min(max(g.StepAngle, MinStepAngle), MaxStepAngle)
}

// roundTenth rounds to one decimal place and never returns negative zero
func roundTenth(v float64) float64 {
	r := math.Round(v*10) / 10
	if r == 0 {
		return 0
	}
	return r
}
