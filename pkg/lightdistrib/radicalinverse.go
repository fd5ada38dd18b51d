package lightdistrib

import "github.com/methusael13/phyray-go/pkg/geom"

// first few primes used as radical-inverse bases; the spatial distribution
// only ever needs 5 low-discrepancy dimensions (3 for position, 2 for the
// light's solid-angle sample).
var radicalInverseBases = [...]uint64{2, 3, 5, 7, 11}

// radicalInverse computes the van der Corput / Halton radical inverse of a
// in the baseIndex'th prime base, used to generate a deterministic,
// well-stratified set of sample points within a voxel.
func radicalInverse(baseIndex int, a uint64) geom.Real {
	base := radicalInverseBases[baseIndex]
	invBase := geom.Real(1) / geom.Real(base)
	invBaseN := geom.Real(1)
	var reversedDigits uint64

	for a > 0 {
		next := a / base
		digit := a - next*base
		reversedDigits = reversedDigits*base + digit
		invBaseN *= invBase
		a = next
	}
	v := geom.Real(reversedDigits) * invBaseN
	if v > 1-1e-7 {
		return 1 - 1e-7
	}
	return v
}
