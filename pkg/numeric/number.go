package numeric

import (
	"math"
	"math/cmplx"
	"reflect"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Number is any real or complex floating-point type.
type Number interface {
	constraints.Float | constraints.Complex
}

// MagnitudeFunc returns the function computing |v| for values of type T:
// the absolute value for reals and the modulus for complex numbers.
//
// The kind of T is resolved once, so the returned function does no type
// dispatch per call.
func MagnitudeFunc[T Number]() func(T) float64 {
	// A type switch on any(v) misses named types such as `type celsius
	// float64`, so switch on the kind and reinterpret the value in place.
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Float32:
		return func(v T) float64 {
			return math.Abs(float64(*(*float32)(unsafe.Pointer(&v))))
		}
	case reflect.Float64:
		return func(v T) float64 {
			return math.Abs(*(*float64)(unsafe.Pointer(&v)))
		}
	case reflect.Complex64:
		return func(v T) float64 {
			return cmplx.Abs(complex128(*(*complex64)(unsafe.Pointer(&v))))
		}
	case reflect.Complex128:
		return func(v T) float64 {
			return cmplx.Abs(*(*complex128)(unsafe.Pointer(&v)))
		}
	}

	// Unreachable for types satisfying Number.
	panic("numeric: unsupported kind " + reflect.TypeFor[T]().String())
}

// Magnitude returns |v|. Prefer MagnitudeFunc in loops.
func Magnitude[T Number](v T) float64 {
	return MagnitudeFunc[T]()(v)
}
