package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapping(t *testing.T) {
	m := NewMapping(map[string]string{
		"50200087543792":  "Operating",
		"922030048910705": "Savings",
	})

	assert.Equal(t, "Operating", m.Name("50200087543792"))
	assert.Equal(t, UnknownName, m.Name("000"))
	assert.True(t, m.Known("922030048910705"))
	assert.False(t, m.Known("000"))
	assert.Equal(t, 2, m.Len())
}

func TestMapping_CopiesInput(t *testing.T) {
	src := map[string]string{"111": "Operating"}
	m := NewMapping(src)
	src["111"] = "Changed"

	assert.Equal(t, "Operating", m.Name("111"))
}

func TestMapping_Nil(t *testing.T) {
	m := NewMapping(nil)
	assert.Zero(t, m.Len())
	assert.Equal(t, UnknownName, m.Name("111"))
}
