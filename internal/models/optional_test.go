package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptional(t *testing.T) {
	var absent Optional[int]
	v, ok := absent.Get()
	assert.False(t, ok)
	assert.Zero(t, v)

	present := Some(0)
	v, ok = present.Get()
	assert.True(t, ok, "a zero value set explicitly is still present")
	assert.Equal(t, 0, v)
}

func TestPatchIsEmpty(t *testing.T) {
	assert.True(t, ProductPatch{}.IsEmpty())
	assert.False(t, ProductPatch{Price: Some(0.0)}.IsEmpty())

	assert.True(t, DonationPatch{}.IsEmpty())
	assert.False(t, DonationPatch{CategoryID: Some(int64(2))}.IsEmpty())
}
