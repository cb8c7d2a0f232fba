package noise

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Diagonal is axis-independent gaussian noise: each axis is drawn from its
// own univariate normal distribution. Unlike Gaussian it accepts zero
// standard deviations, in which case the axis sample equals its mean, so it
// can model exactly known axes.
type Diagonal struct {
	// dists are per axis normal distributions
	dists []distuv.Normal
	// std are per axis standard deviations
	std []float64
}

// NewDiagonal creates new Diagonal noise with the given per-axis means and
// standard deviations. It returns error if the two slices have different
// lengths or if any standard deviation is negative.
func NewDiagonal(mean, std []float64) (*Diagonal, error) {
	if len(mean) != len(std) {
		return nil, fmt.Errorf("invalid noise dimensions: %d mean(s), %d std(s)", len(mean), len(std))
	}

	if len(mean) == 0 {
		return nil, fmt.Errorf("invalid noise dimension: 0")
	}

	dists := make([]distuv.Normal, len(mean))
	for i := range mean {
		if std[i] < 0 {
			return nil, fmt.Errorf("invalid standard deviation: %f", std[i])
		}
		dists[i] = distuv.Normal{Mu: mean[i], Sigma: std[i]}
	}

	s := make([]float64, len(std))
	copy(s, std)

	return &Diagonal{
		dists: dists,
		std:   s,
	}, nil
}

// Sample draws every axis independently and returns the sample vector.
func (d *Diagonal) Sample() mat.Vector {
	s := make([]float64, len(d.dists))
	for i := range d.dists {
		if d.dists[i].Sigma == 0 {
			s[i] = d.dists[i].Mu
			continue
		}
		s[i] = d.dists[i].Rand()
	}

	return mat.NewVecDense(len(s), s)
}

// Cov returns the diagonal covariance matrix of the noise.
func (d *Diagonal) Cov() mat.Symmetric {
	cov := mat.NewSymDense(len(d.std), nil)
	for i, s := range d.std {
		cov.SetSym(i, i, s*s)
	}

	return cov
}

// Mean returns per-axis noise means.
func (d *Diagonal) Mean() []float64 {
	mean := make([]float64, len(d.dists))
	for i := range d.dists {
		mean[i] = d.dists[i].Mu
	}

	return mean
}

// Reset does nothing: Diagonal draws from the default gonum source.
func (d *Diagonal) Reset() {}

// String implements the Stringer interface.
func (d *Diagonal) String() string {
	return fmt.Sprintf("Diagonal{\nMean=%v\nStd=%v\n}", d.Mean(), d.std)
}
