package numeric

// Linspace returns n evenly spaced values from start to stop inclusive.
//
// The first and last values are exactly start and stop. A single sample is
// start; n < 1 yields nil.
func Linspace(start, stop float64, n int) []float64 {
	if n < 1 {
		return nil
	}

	xs := make([]float64, n)
	xs[0] = start
	if n == 1 {
		return xs
	}

	step := (stop - start) / float64(n-1)
	for i := 1; i < n-1; i++ {
		xs[i] = start + float64(i)*step
	}
	xs[n-1] = stop

	return xs
}
