package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptions_DistinctWordsFromPool(t *testing.T) {
	opts := Options(3)
	assert.Len(t, opts, 3)

	seen := map[string]bool{}
	for _, w := range opts {
		assert.False(t, seen[w], "duplicate option %q", w)
		seen[w] = true
		assert.Contains(t, Pool, w)
	}
}

func TestOptions_Bounds(t *testing.T) {
	assert.Nil(t, Options(0))
	assert.Nil(t, Options(-1))
	assert.Len(t, Options(len(Pool)+10), len(Pool))
}
