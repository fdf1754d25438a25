package parser

// DecompressAmount recovers a satoshi value from its compressed form.
//
// The forward direction factors the value into n * 10^e with e the count of
// trailing decimal zeros (capped at 9). For e < 9 the last digit d of n is
// in [1,9] and gets folded in separately, so round amounts like 50*10^8 fit
// in very few varint bytes:
//
//	x = 0  OR  x = 1+10*(9*n + d - 1) + e  OR  x = 1+10*(n - 1) + 9
func DecompressAmount(x uint64) uint64 {
	if x == 0 {
		return 0
	}
	x--
	// x = 10*(9*n + d - 1) + e
	e := x % 10
	x /= 10
	var n uint64
	if e < 9 {
		// x = 9*n + d - 1
		d := (x % 9) + 1
		x /= 9
		// x = n
		n = x*10 + d
	} else {
		n = x + 1
	}
	for e != 0 {
		n *= 10
		e--
	}
	return n
}
