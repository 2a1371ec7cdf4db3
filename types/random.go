package types

import "math/rand"

// Uniform scalar in [min, max).
func RandomRange(rng *rand.Rand, min, max float64) float64 {
	return min + (max-min)*rng.Float64()
}

// Vector with every component uniform in [min, max).
func RandomVec3(rng *rand.Rand, min, max float64) Vec3 {
	return Vec3{
		RandomRange(rng, min, max),
		RandomRange(rng, min, max),
		RandomRange(rng, min, max),
	}
}

// Point uniformly distributed inside the unit ball. Points too close to the
// origin are rejected so that the result can always be normalized.
func RandomInUnitBall(rng *rand.Rand) Vec3 {
	for {
		p := RandomVec3(rng, -1, 1)
		lenSq := p.LenSq()
		if lenSq > 1 || lenSq < 1e-6 {
			continue
		}
		return p
	}
}

// Unit vector with a uniformly distributed direction.
func RandomUnitVector(rng *rand.Rand) Vec3 {
	return RandomInUnitBall(rng).Normalize()
}
