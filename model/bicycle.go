package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// yawEps bounds the yaw rates treated as straight-line motion.
// Below this threshold the closed-form turning equations divide by
// a near-zero yaw rate, so the straight-line limit is used instead.
const yawEps = 1e-6

// Bicycle is a kinematic bicycle (unicycle) motion model of a ground vehicle.
// Its state is the pose vector (x, y, theta) and its control input is the
// vector (dt, v, yawRate): time step, longitudinal velocity and yaw rate.
type Bicycle struct{}

// NewBicycle creates a new Bicycle motion model and returns it.
func NewBicycle() (*Bicycle, error) {
	return &Bicycle{}, nil
}

// Propagate advances pose x one control step given control input u and
// returns the new pose. If a noise sample q of matching size is supplied
// it is added to the propagated pose. It returns error if either the pose
// or the control vector has invalid dimensions.
func (b *Bicycle) Propagate(x, u, q mat.Vector) (mat.Vector, error) {
	nx, nu := b.Dims()
	if x == nil || x.Len() != nx {
		return nil, fmt.Errorf("invalid state vector")
	}

	if u == nil || u.Len() != nu {
		return nil, fmt.Errorf("invalid input vector")
	}

	px, py, theta := x.AtVec(0), x.AtVec(1), x.AtVec(2)
	dt, v, yawRate := u.AtVec(0), u.AtVec(1), u.AtVec(2)

	var nxPos, nyPos float64
	if math.Abs(yawRate) > yawEps {
		nxPos = px + (v/yawRate)*(math.Sin(theta+yawRate*dt)-math.Sin(theta))
		nyPos = py + (v/yawRate)*(math.Cos(theta)-math.Cos(theta+yawRate*dt))
	} else {
		nxPos = px + v*dt*math.Cos(theta)
		nyPos = py + v*dt*math.Sin(theta)
	}
	nTheta := theta + yawRate*dt

	out := mat.NewVecDense(nx, []float64{nxPos, nyPos, nTheta})

	if q != nil && q.Len() == nx {
		out.AddVec(out, q)
	}

	return out, nil
}

// Dims returns the state and control input dimensions of the model.
func (b *Bicycle) Dims() (nx, nu int) {
	return 3, 3
}
