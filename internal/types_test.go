package internal

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func TestMaybeFloat(t *testing.T) {
	assert.False(t, MaybeFloat(nil).Valid())
	assert.True(t, MaybeFloat(lo.ToPtr(0.0)).Valid())
	assert.Equal(t, 0.7, MaybeFloat(lo.ToPtr(0.7)).Value)
}

func TestMaybeInt(t *testing.T) {
	assert.False(t, MaybeInt(nil).Valid())
	assert.Equal(t, int64(42), MaybeInt(lo.ToPtr(42)).Value)
}

func TestNonZero(t *testing.T) {
	assert.Nil(t, NonZero(0.0))
	assert.Nil(t, NonZero(""))
	assert.Equal(t, lo.ToPtr(1.5), NonZero(1.5))
}
