package domain

import "math"

// MaxCoins is the largest count a denomination may hold. It matches the
// INTEGER columns of the inventories table.
const MaxCoins = math.MaxInt32

// Currency holds coin counts per denomination. No conversion between
// denominations happens here; that is a display concern.
type Currency struct {
	PP int `json:"pp" validate:"min=0,max=2147483647"`
	GP int `json:"gp" validate:"min=0,max=2147483647"`
	SP int `json:"sp" validate:"min=0,max=2147483647"`
	CP int `json:"cp" validate:"min=0,max=2147483647"`
}

// CurrencyDelta is a signed adjustment per denomination.
type CurrencyDelta struct {
	PP int `json:"pp" validate:"min=-2147483647,max=2147483647"`
	GP int `json:"gp" validate:"min=-2147483647,max=2147483647"`
	SP int `json:"sp" validate:"min=-2147483647,max=2147483647"`
	CP int `json:"cp" validate:"min=-2147483647,max=2147483647"`
}

// IsZero reports whether the delta changes nothing.
func (d CurrencyDelta) IsZero() bool {
	return d == CurrencyDelta{}
}

// Valid reports whether every denomination is within [0, MaxCoins].
func (c Currency) Valid() bool {
	for _, n := range [...]int{c.PP, c.GP, c.SP, c.CP} {
		if n < 0 || n > MaxCoins {
			return false
		}
	}
	return true
}

// Apply adds delta to c, saturating each denomination to [0, MaxCoins].
func (c Currency) Apply(delta CurrencyDelta) Currency {
	return Currency{
		PP: clampAdd(c.PP, delta.PP),
		GP: clampAdd(c.GP, delta.GP),
		SP: clampAdd(c.SP, delta.SP),
		CP: clampAdd(c.CP, delta.CP),
	}
}

func clampAdd(have, delta int) int {
	have = min(max(have, 0), MaxCoins)
	switch {
	case delta >= MaxCoins-have:
		return MaxCoins
	case delta <= -have:
		return 0
	}
	return have + delta
}
