package stripe

import "math"

// ToMinorUnits converts a major-unit amount (euros) to cents, rounding to the
// nearest cent.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
