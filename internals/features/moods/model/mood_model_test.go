package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMood(t *testing.T) {
	for _, m := range Moods {
		assert.True(t, IsMood(m), m)
	}
	assert.Len(t, Moods, 8)
	assert.False(t, IsMood("bored"))
	assert.False(t, IsMood(""))
}
