package sim

import (
	"testing"

	"github.com/milosgajdos/go-localize/landmark"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestNew2DPlot(t *testing.T) {
	assert := assert.New(t)

	m, err := landmark.NewMap([]landmark.Landmark{{ID: 1, X: 5.0, Y: 3.0}})
	assert.NoError(err)

	truth := mat.NewDense(3, 3, nil)
	filtered := mat.NewDense(3, 3, nil)

	plt, err := New2DPlot(truth, filtered, m)
	assert.NotNil(plt)
	assert.NoError(err)

	plt, err = New2DPlot(nil, nil, nil)
	assert.Nil(plt)
	assert.Error(err)

	plt, err = New2DPlot(mat.NewDense(3, 1, nil), filtered, m)
	assert.Nil(plt)
	assert.Error(err)
}
