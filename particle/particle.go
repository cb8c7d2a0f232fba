package particle

import (
	"strconv"
	"strings"
)

// Particle is a single weighted pose hypothesis of a localization filter.
// Theta is in radians and is not normalized to any range: callers must not
// assume it lies within [-pi, pi].
type Particle struct {
	// X is map frame x position
	X float64
	// Y is map frame y position
	Y float64
	// Theta is heading in radians
	Theta float64
	// Weight is unnormalized observation likelihood
	Weight float64

	// diagnostic bindings of the observations last matched to this particle
	associations []int
	senseX       []float64
	senseY       []float64
}

// SetAssociations overwrites the particle's diagnostic bindings: the
// landmark ids and the map frame coordinates of the observations matched to
// this particle during the last weighting. It is pure bookkeeping with no
// effect on filtering.
func (p *Particle) SetAssociations(associations []int, senseX, senseY []float64) {
	p.associations = associations
	p.senseX = senseX
	p.senseY = senseY
}

// Associations renders the matched landmark ids as space separated text
// with no trailing separator.
func (p *Particle) Associations() string {
	ids := make([]string, len(p.associations))
	for i, id := range p.associations {
		ids[i] = strconv.Itoa(id)
	}

	return strings.Join(ids, " ")
}

// SenseX renders the map frame x coordinates of the matched observations as
// space separated text with no trailing separator.
func (p *Particle) SenseX() string {
	return joinFloats(p.senseX)
}

// SenseY renders the map frame y coordinates of the matched observations as
// space separated text with no trailing separator.
func (p *Particle) SenseY() string {
	return joinFloats(p.senseY)
}

// Clone returns a deep copy of the particle: the returned particle shares
// no backing storage with the original.
func (p *Particle) Clone() Particle {
	c := *p

	if p.associations != nil {
		c.associations = make([]int, len(p.associations))
		copy(c.associations, p.associations)
	}
	if p.senseX != nil {
		c.senseX = make([]float64, len(p.senseX))
		copy(c.senseX, p.senseX)
	}
	if p.senseY != nil {
		c.senseY = make([]float64, len(p.senseY))
		copy(c.senseY, p.senseY)
	}

	return c
}

func joinFloats(vals []float64) string {
	s := make([]string, len(vals))
	for i, v := range vals {
		s[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}

	return strings.Join(s, " ")
}
