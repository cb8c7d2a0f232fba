package localize

import "gonum.org/v1/gonum/mat"

// Propagator propagates a state hypothesis to the next time step
type Propagator interface {
	// Propagate advances state x given control input u and noise sample q
	Propagate(x, u, q mat.Vector) (mat.Vector, error)
}

// Noise is dynamical system noise
type Noise interface {
	// Mean returns noise mean
	Mean() []float64
	// Cov returns covariance matrix of the noise
	Cov() mat.Symmetric
	// Sample returns a sample of the noise
	Sample() mat.Vector
	// Reset resets the noise
	Reset()
}

// Estimate is a localization filter estimate
type Estimate interface {
	// Val returns estimate value
	Val() mat.Vector
	// Cov returns estimate covariance
	Cov() mat.Symmetric
}
