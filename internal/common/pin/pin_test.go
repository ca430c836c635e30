package pin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMintIsFourDigits(t *testing.T) {
	minter := New(&Config{Seed: 42})

	for i := 0; i < 100; i++ {
		code := minter.Mint()
		assert.Len(t, code, 4)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9')
		}
	}
}

func TestMintIsDeterministicWithSeed(t *testing.T) {
	a := New(&Config{Seed: 7})
	b := New(&Config{Seed: 7})

	assert.Equal(t, a.Mint(), b.Mint())
}
