package transforms

import (
	"math/cmplx"
)

// Julia2 is the quadratic map z^2 + C.
type Julia2 struct {
	C complex128
}

func (j Julia2) Next(z complex128) complex128 {
	return z*z + j.C
}

func (j Julia2) Apply(zs []complex128) {
	for i, z := range zs {
		zs[i] = z*z + j.C
	}
}

// JuliaN is z^N + C for a complex exponent N, on the principal branch.
type JuliaN struct {
	N complex128
	C complex128
}

func (j JuliaN) Next(z complex128) complex128 {
	return cmplx.Pow(z, j.N) + j.C
}

func (j JuliaN) Apply(zs []complex128) {
	for i, z := range zs {
		zs[i] = cmplx.Pow(z, j.N) + j.C
	}
}
