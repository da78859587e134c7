// Package mobility provides the entity model, the need–alternative matcher,
// and the decent-mobility evaluator for simulated travel behavior.
package mobility

import (
	"fmt"
	"math"
)

// LocationType enumerates the roles a location can play for an agent.
// A role indexes the agent's location mapping; it is not itself a place.
type LocationType uint8

const (
	LocationHome LocationType = iota
	LocationWork
)

// LocationTypeName returns a human-readable name for a location type.
func LocationTypeName(t LocationType) string {
	switch t {
	case LocationHome:
		return "home"
	case LocationWork:
		return "work"
	default:
		return fmt.Sprintf("location_type(%d)", t)
	}
}

// Location is a place an agent travels between. Implementations are
// immutable value types with structural equality, so they can serve as
// matching keys.
type Location interface {
	// String describes the location for logs and error messages.
	String() string
}

// GridLocation is a location denoted as (x, y) coordinates on an abstract
// square grid. Distances between grid locations are Euclidean.
type GridLocation struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo returns the straight-line distance to another grid location.
// The result is symmetric, non-negative, and zero for coincident points.
func (l GridLocation) DistanceTo(other GridLocation) float64 {
	return math.Hypot(other.X-l.X, other.Y-l.Y)
}

func (l GridLocation) String() string {
	return fmt.Sprintf("(%g, %g)", l.X, l.Y)
}
