package transforms

type Linear struct {
	Multiply complex128
	Add      complex128
}

func (l Linear) Next(z complex128) complex128 {
	return z*l.Multiply + l.Add
}

func (l Linear) Apply(zs []complex128) {
	for i, z := range zs {
		zs[i] = z*l.Multiply + l.Add
	}
}
