package sir

import (
	"errors"
	"fmt"
	"math"

	localize "github.com/milosgajdos/go-localize"
	"github.com/milosgajdos/go-localize/estimate"
	"github.com/milosgajdos/go-localize/landmark"
	"github.com/milosgajdos/go-localize/noise"
	"github.com/milosgajdos/go-localize/particle"
	"github.com/milosgajdos/go-localize/rand"
	"github.com/milosgajdos/matrix"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// ErrDegenerate is returned when all particle weights are zero or NaN.
// It signals filter divergence: resampling from such a weight vector is
// undefined, so the cycle must fail rather than resample uniformly.
var ErrDegenerate = errors.New("degenerate particle weights")

// Observation is a sensor detection in the agent's local frame.
// It carries no identity: association to a map landmark is inferred
// during weighting.
type Observation struct {
	// X is local frame x offset from the agent
	X float64
	// Y is local frame y offset from the agent
	Y float64
}

// SIR is a Sampling Importance Resampling (aka bootstrap) particle filter
// which localizes a 2D pose (x, y, heading) against a known landmark map.
// For more information about SIR filters see:
// https://en.wikipedia.org/wiki/Particle_filter#The_bootstrap_filter
//
// Each timestep the driver runs Predict, UpdateWeights and Resample in
// strict sequence; Init must have been called exactly once before the
// first cycle.
type SIR struct {
	// m propagates particle poses to the next time step
	m localize.Propagator
	// n is the particle count, fixed once Init has run
	n int
	// particles are the filter pose hypotheses
	particles []particle.Particle
	// w stores particle weights, index aligned to particles
	w []float64
	// inn stores a diff between a transformed observation and its
	// associated landmark. Its size is fixed to the observation size,
	// so we preallocate it to avoid reallocating it on every call
	// to UpdateWeights().
	inn []float64
	// predicted tracks whether a control step has been issued since Init:
	// weighting particles that were never propagated is a driver bug
	predicted bool
}

// New creates a new SIR filter with n particles whose motion is governed by
// the propagator m and returns it. The filter is not usable until Init
// seeds its particles. New returns error if m is nil or if a non-positive
// particle count is given.
func New(m localize.Propagator, n int) (*SIR, error) {
	if m == nil {
		return nil, fmt.Errorf("invalid propagator: %v", m)
	}

	if n <= 0 {
		return nil, fmt.Errorf("invalid particle count: %d", n)
	}

	return &SIR{
		m:   m,
		n:   n,
		inn: make([]float64, 2),
	}, nil
}

// Init seeds the filter particle set from the prior pose estimate
// (x, y, theta): each particle's coordinates are drawn independently from a
// Gaussian centered at the prior with the given per-axis standard
// deviations, and every weight is set to 1.0. Init replaces any existing
// particle set. It returns error if any standard deviation is negative or
// if the particles fail to be generated.
func (s *SIR) Init(x, y, theta float64, std [3]float64) error {
	cov := mat.NewSymDense(3, nil)
	for i, sd := range std {
		if sd < 0 {
			return fmt.Errorf("invalid standard deviation: %f", sd)
		}
		cov.SetSym(i, i, sd*sd)
	}

	samples, err := rand.WithCovN(cov, s.n)
	if err != nil {
		return fmt.Errorf("failed to generate filter particles: %v", err)
	}

	s.particles = make([]particle.Particle, s.n)
	s.w = make([]float64, s.n)

	for i := range s.particles {
		s.particles[i] = particle.Particle{
			X:      x + samples.At(0, i),
			Y:      y + samples.At(1, i),
			Theta:  theta + samples.At(2, i),
			Weight: 1.0,
		}
		s.w[i] = 1.0
	}
	s.predicted = false

	return nil
}

// Predict advances every particle in place by one control step of the
// motion model and adds zero-mean Gaussian process noise with the per-axis
// standard deviations stdPos. The noise draws are independent across
// particles and across calls. It returns error if the filter has not been
// initialized or if particle propagation fails.
func (s *SIR) Predict(dt float64, stdPos [3]float64, v, yawRate float64) error {
	if err := s.initialized(); err != nil {
		return err
	}

	q, err := noise.NewDiagonal(make([]float64, 3), stdPos[:])
	if err != nil {
		return fmt.Errorf("invalid process noise: %v", err)
	}

	u := mat.NewVecDense(3, []float64{dt, v, yawRate})
	x := mat.NewVecDense(3, nil)

	for i := range s.particles {
		p := &s.particles[i]
		x.SetVec(0, p.X)
		x.SetVec(1, p.Y)
		x.SetVec(2, p.Theta)

		next, err := s.m.Propagate(x, u, q.Sample())
		if err != nil {
			return fmt.Errorf("particle propagation failed: %v", err)
		}

		p.X, p.Y, p.Theta = next.AtVec(0), next.AtVec(1), next.AtVec(2)
	}
	s.predicted = true

	return nil
}

// UpdateWeights recomputes the weight of every particle from a batch of
// local frame observations. Each observation is transformed into the map
// frame using the particle pose, associated to its nearest landmark and
// scored under a bivariate Gaussian with standard deviations stdLandmark;
// the particle weight is the product of the per-observation likelihoods,
// reset to 1.0 before accumulation. Each particle is also annotated with
// the ids and map frame coordinates of its matches.
//
// Observations whose local frame distance from the agent exceeds
// sensorRange are skipped; the same policy applies to every particle so no
// bias is introduced. A non-positive sensorRange disables the range check.
// A particle with no usable observations keeps weight 1.0.
//
// It returns error if the filter has not been initialized, if no control
// step has been issued since Init, if the landmark map is nil or empty, or
// if stdLandmark does not define a valid measurement distribution.
func (s *SIR) UpdateWeights(sensorRange float64, stdLandmark [2]float64, obs []Observation, m *landmark.Map) error {
	if err := s.initialized(); err != nil {
		return err
	}

	if !s.predicted {
		return fmt.Errorf("no control step issued: call Predict before UpdateWeights")
	}

	if m == nil || m.Len() == 0 {
		return fmt.Errorf("invalid landmark map: %v", m)
	}

	cov := mat.NewSymDense(2, []float64{
		stdLandmark[0] * stdLandmark[0], 0,
		0, stdLandmark[1] * stdLandmark[1],
	})
	// measurement error PDF: zero mean bivariate Gaussian
	errPDF, ok := distmv.NewNormal(make([]float64, 2), cov, nil)
	if !ok {
		return fmt.Errorf("invalid landmark measurement deviations: %v", stdLandmark)
	}

	for i := range s.particles {
		p := &s.particles[i]
		p.Weight = 1.0

		var ids []int
		var senseX, senseY []float64

		sin, cos := math.Sincos(p.Theta)
		for _, o := range obs {
			if sensorRange > 0 && math.Hypot(o.X, o.Y) > sensorRange {
				continue
			}

			// local frame -> map frame: rotate by particle heading, translate to particle position
			xm := p.X + cos*o.X - sin*o.Y
			ym := p.Y + sin*o.X + cos*o.Y

			nn := m.Nearest(xm, ym)

			s.inn[0] = xm - nn.X
			s.inn[1] = ym - nn.Y
			p.Weight *= math.Exp(errPDF.LogProb(s.inn))

			ids = append(ids, nn.ID)
			senseX = append(senseX, xm)
			senseY = append(senseY, ym)
		}

		p.SetAssociations(ids, senseX, senseY)
		s.w[i] = p.Weight
	}

	return nil
}

// Resample replaces the particle set with a new generation drawn with
// replacement, the probability of drawing index i being w[i]/sum(w). The
// new particles are deep copies: the old and new generations share no
// backing storage. The particle count never changes. It returns
// ErrDegenerate if the weights sum to zero or NaN.
func (s *SIR) Resample() error {
	if err := s.initialized(); err != nil {
		return err
	}

	sum := floats.Sum(s.w)
	if math.IsNaN(sum) || sum <= 0 {
		return ErrDegenerate
	}

	indices, err := rand.RouletteDrawN(s.w, s.n)
	if err != nil {
		return fmt.Errorf("failed to sample filter particles: %v", err)
	}

	next := make([]particle.Particle, s.n)
	w := make([]float64, s.n)
	for i, idx := range indices {
		next[i] = s.particles[idx].Clone()
		w[i] = next[i].Weight
	}

	s.particles = next
	s.w = w

	return nil
}

// Roughen adds covariance shaped jitter to every particle pose, scaled by
// the regularization parameter alpha. It counters sample impoverishment
// after resampling. If a non-positive alpha is provided the optimal alpha
// for a Gaussian kernel is used. Roughen is never invoked implicitly:
// Resample on its own is a pure importance resampling step.
func (s *SIR) Roughen(alpha float64) error {
	if err := s.initialized(); err != nil {
		return err
	}

	cov, err := matrix.Cov(s.poses(), "cols")
	if err != nil {
		return fmt.Errorf("failed to calculate covariance matrix: %v", err)
	}

	jitter, err := rand.WithCovN(cov, s.n)
	if err != nil {
		return fmt.Errorf("failed to draw random particle perturbations: %v", err)
	}

	if alpha <= 0 {
		alpha = AlphaGauss(3, s.n)
	}
	jitter.Scale(alpha, jitter)

	for i := range s.particles {
		p := &s.particles[i]
		p.X += jitter.At(0, i)
		p.Y += jitter.At(1, i)
		p.Theta += jitter.At(2, i)
	}

	return nil
}

// Estimate returns the weighted mean pose of the particle set together with
// the sample covariance of the particle cloud. It returns ErrDegenerate if
// the weights cannot be normalized.
func (s *SIR) Estimate() (localize.Estimate, error) {
	if err := s.initialized(); err != nil {
		return nil, err
	}

	sum := floats.Sum(s.w)
	if math.IsNaN(sum) || sum <= 0 {
		return nil, ErrDegenerate
	}

	mean := mat.NewVecDense(3, nil)
	for i := range s.particles {
		p := &s.particles[i]
		wn := s.w[i] / sum
		mean.SetVec(0, mean.AtVec(0)+wn*p.X)
		mean.SetVec(1, mean.AtVec(1)+wn*p.Y)
		mean.SetVec(2, mean.AtVec(2)+wn*p.Theta)
	}

	cov, err := matrix.Cov(s.poses(), "cols")
	if err != nil {
		return nil, fmt.Errorf("failed to calculate covariance matrix: %v", err)
	}

	return estimate.NewBaseWithCov(mean, cov)
}

// Best returns a copy of the highest weight particle. Ties resolve to the
// lowest index. It returns error if the filter has not been initialized.
func (s *SIR) Best() (particle.Particle, error) {
	if err := s.initialized(); err != nil {
		return particle.Particle{}, err
	}

	best := 0
	for i := range s.particles {
		if s.particles[i].Weight > s.particles[best].Weight {
			best = i
		}
	}

	return s.particles[best].Clone(), nil
}

// Particles returns a deep copy of the filter particle set.
func (s *SIR) Particles() []particle.Particle {
	ps := make([]particle.Particle, len(s.particles))
	for i := range s.particles {
		ps[i] = s.particles[i].Clone()
	}

	return ps
}

// Weights returns a vector containing the filter particle weights.
func (s *SIR) Weights() mat.Vector {
	if len(s.w) == 0 {
		return &mat.VecDense{}
	}

	data := make([]float64, len(s.w))
	copy(data, s.w)

	return mat.NewVecDense(len(data), data)
}

// AlphaGauss computes optimal regularization parameter for Gaussian kernel and returns it.
func AlphaGauss(r, c int) float64 {
	return math.Pow(4.0/(float64(c)*(float64(r)+2.0)), 1/(float64(r)+4.0))
}

func (s *SIR) initialized() error {
	if len(s.particles) == 0 {
		return fmt.Errorf("filter not initialized")
	}

	return nil
}

// poses stores particle poses as column vectors
func (s *SIR) poses() *mat.Dense {
	poses := mat.NewDense(3, s.n, nil)
	for i := range s.particles {
		p := &s.particles[i]
		poses.Set(0, i, p.X)
		poses.Set(1, i, p.Y)
		poses.Set(2, i, p.Theta)
	}

	return poses
}
