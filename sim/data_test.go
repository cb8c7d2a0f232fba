package sim

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadMap(t *testing.T) {
	assert := assert.New(t)

	data := `92.064	-34.777	1
61.109	-47.132	2

17.42	-4.5	3
`
	m, err := ReadMap(strings.NewReader(data))
	assert.NotNil(m)
	assert.NoError(err)
	assert.Equal(3, m.Len())

	l := m.Landmarks()
	assert.Equal(1, l[0].ID)
	assert.InDelta(92.064, l[0].X, 1e-12)
	assert.InDelta(-34.777, l[0].Y, 1e-12)
	assert.Equal(3, l[2].ID)
}

func TestReadMapInvalid(t *testing.T) {
	assert := assert.New(t)

	// wrong field count
	m, err := ReadMap(strings.NewReader("1.0 2.0"))
	assert.Nil(m)
	assert.Error(err)

	// malformed coordinate
	m, err = ReadMap(strings.NewReader("abc 2.0 1"))
	assert.Nil(m)
	assert.Error(err)

	// malformed id
	m, err = ReadMap(strings.NewReader("1.0 2.0 x"))
	assert.Nil(m)
	assert.Error(err)

	// no landmarks at all
	m, err = ReadMap(strings.NewReader(""))
	assert.Nil(m)
	assert.Error(err)
}
