package domain

// Position is a point in canvas pixel space
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Add offsets the position by another position
func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns p minus o
func (p Position) Sub(o Position) Position {
	return Position{X: p.X - o.X, Y: p.Y - o.Y}
}

// Midpoint returns the point halfway between p and o
func (p Position) Midpoint(o Position) Position {
	return Position{X: (p.X + o.X) / 2, Y: (p.Y + o.Y) / 2}
}

// ClampNonNegative pins negative coordinates to zero
func (p Position) ClampNonNegative() Position {
	if p.X < 0 {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = 0
	}
	return p
}
