// Package sim provides driver support for localization filters: ground
// truth trajectory generation, synthetic landmark observations, map data
// parsing and result plotting.
package sim

import (
	"fmt"
	"math"

	localize "github.com/milosgajdos/go-localize"
	"github.com/milosgajdos/go-localize/landmark"
	"github.com/milosgajdos/go-localize/particle/sir"
	"gonum.org/v1/gonum/mat"
)

// Control is one control step applied to the motion model.
type Control struct {
	// DT is control step duration
	DT float64
	// Velocity is longitudinal velocity
	Velocity float64
	// YawRate is heading change rate
	YawRate float64
}

// Trajectory propagates the initial pose x0 = (x, y, theta) through the
// given control sequence without noise and returns the resulting ground
// truth track: one pose per row, starting with x0, len(controls)+1 rows in
// total. It returns error if x0 is not a pose vector or if propagation
// fails.
func Trajectory(p localize.Propagator, x0 mat.Vector, controls []Control) (*mat.Dense, error) {
	if x0 == nil || x0.Len() != 3 {
		return nil, fmt.Errorf("invalid initial pose")
	}

	track := mat.NewDense(len(controls)+1, 3, nil)
	track.SetRow(0, []float64{x0.AtVec(0), x0.AtVec(1), x0.AtVec(2)})

	x := mat.Vector(x0)
	for i, c := range controls {
		u := mat.NewVecDense(3, []float64{c.DT, c.Velocity, c.YawRate})

		next, err := p.Propagate(x, u, nil)
		if err != nil {
			return nil, fmt.Errorf("trajectory propagation failed: %v", err)
		}

		track.SetRow(i+1, []float64{next.AtVec(0), next.AtVec(1), next.AtVec(2)})
		x = next
	}

	return track, nil
}

// Observe synthesizes local frame landmark observations as seen from the
// given pose: every landmark within sensorRange is transformed into the
// agent's frame and perturbed by a sample of the sensor noise n. A nil n
// yields noiseless observations. It returns error if the pose or the map
// is invalid.
func Observe(pose mat.Vector, m *landmark.Map, sensorRange float64, n localize.Noise) ([]sir.Observation, error) {
	if pose == nil || pose.Len() != 3 {
		return nil, fmt.Errorf("invalid pose")
	}

	if m == nil || m.Len() == 0 {
		return nil, fmt.Errorf("invalid landmark map: %v", m)
	}

	px, py, theta := pose.AtVec(0), pose.AtVec(1), pose.AtVec(2)
	sin, cos := math.Sincos(theta)

	var obs []sir.Observation
	for _, l := range m.InRange(px, py, sensorRange) {
		dx, dy := l.X-px, l.Y-py

		// map frame -> local frame: inverse of the weighting transform
		o := sir.Observation{
			X: cos*dx + sin*dy,
			Y: -sin*dx + cos*dy,
		}

		if n != nil {
			if s := n.Sample(); s.Len() == 2 {
				o.X += s.AtVec(0)
				o.Y += s.AtVec(1)
			}
		}

		obs = append(obs, o)
	}

	return obs, nil
}
