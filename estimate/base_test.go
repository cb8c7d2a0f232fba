package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestNewBase(t *testing.T) {
	assert := assert.New(t)

	pose := mat.NewVecDense(3, []float64{1.0, 2.0, 0.5})
	cov := mat.NewSymDense(3, nil)

	b, err := NewBase(pose)
	assert.NotNil(b)
	assert.NoError(err)

	b, err = NewBaseWithCov(pose, cov)
	assert.NotNil(b)
	assert.NoError(err)

	// mismatched dimensions
	b, err = NewBaseWithCov(pose, mat.NewSymDense(1, []float64{1.0}))
	assert.Nil(b)
	assert.Error(err)
}

func TestValCov(t *testing.T) {
	assert := assert.New(t)

	pose := mat.NewVecDense(3, []float64{1.0, 2.0, 0.5})
	cov := mat.NewSymDense(3, []float64{
		1.0, 0.0, 0.0,
		0.0, 2.0, 0.0,
		0.0, 0.0, 0.1,
	})

	b, err := NewBaseWithCov(pose, cov)
	assert.NotNil(b)
	assert.NoError(err)

	v := b.Val()
	for i := 0; i < pose.Len(); i++ {
		assert.Equal(pose.AtVec(i), v.AtVec(i))
	}

	c := b.Cov()
	r, cols := c.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < cols; j++ {
			assert.Equal(cov.At(i, j), c.At(i, j))
		}
	}

	// returned value is a clone: mutating it must not touch the estimate
	v.(*mat.VecDense).SetVec(0, 100.0)
	assert.Equal(1.0, b.Val().AtVec(0))
}
