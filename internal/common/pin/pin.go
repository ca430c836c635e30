package pin

import (
	"fmt"
	"math/rand"
	"time"
)

// Minter generates join secrets for new sessions
type Minter struct {
	random *rand.Rand
}

// Config for pin minter
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new pin minter
func New(cfg *Config) *Minter {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)
	random := rand.New(source)

	return &Minter{
		random: random,
	}
}

// Mint generates a 4-digit pin code, zero-padded
func (m *Minter) Mint() string {
	return fmt.Sprintf("%04d", m.random.Intn(10000))
}
