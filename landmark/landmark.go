package landmark

import (
	"fmt"
	"math"
)

// Landmark is a fixed, known point of interest in the map frame.
type Landmark struct {
	// ID is unique landmark id
	ID int
	// X is map frame x coordinate
	X float64
	// Y is map frame y coordinate
	Y float64
}

// Map is a read-only collection of landmarks.
// It is loaded once and shared across filter cycles without synchronization.
type Map struct {
	landmarks []Landmark
}

// NewMap creates new landmark Map from the given landmarks and returns it.
// It returns error if no landmarks are given: a localization map with no
// landmarks is an invalid configuration.
func NewMap(landmarks []Landmark) (*Map, error) {
	if len(landmarks) == 0 {
		return nil, fmt.Errorf("invalid landmark map: no landmarks")
	}

	l := make([]Landmark, len(landmarks))
	copy(l, landmarks)

	return &Map{landmarks: l}, nil
}

// Len returns the number of landmarks in the map.
func (m *Map) Len() int {
	return len(m.landmarks)
}

// Landmarks returns a copy of all map landmarks.
func (m *Map) Landmarks() []Landmark {
	l := make([]Landmark, len(m.landmarks))
	copy(l, m.landmarks)

	return l
}

// Nearest returns the landmark closest to the map frame point (x, y) under
// squared Euclidean distance. The returned pointer borrows into the map's
// backing store: it remains valid for the lifetime of the map and must not
// be mutated. Ties resolve to the first landmark scanned.
func (m *Map) Nearest(x, y float64) *Landmark {
	nn := &m.landmarks[0]
	minDist := math.Inf(1)

	for i := range m.landmarks {
		l := &m.landmarks[i]
		dist := (x-l.X)*(x-l.X) + (y-l.Y)*(y-l.Y)
		if dist < minDist {
			minDist = dist
			nn = l
		}
	}

	return nn
}

// InRange returns copies of all landmarks within Euclidean distance r of the
// map frame point (x, y).
func (m *Map) InRange(x, y, r float64) []Landmark {
	var in []Landmark
	for _, l := range m.landmarks {
		if math.Hypot(x-l.X, y-l.Y) <= r {
			in = append(in, l)
		}
	}

	return in
}
