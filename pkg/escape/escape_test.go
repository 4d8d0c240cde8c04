package escape

import (
	"context"
	"errors"
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/willbeason/escape-time/pkg/grid"
	"github.com/willbeason/escape-time/pkg/numeric"
)

func mustRows[T any](t *testing.T, rows [][]T) numeric.Array[T] {
	t.Helper()
	a, err := numeric.FromRows(rows)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestTimeReal(t *testing.T) {
	x0 := mustRows(t, [][]float64{{1, 2}, {3, 4}})
	square := Func[float64](func(x float64) float64 { return x * x })

	// 2 -> 4 -> 16 -> 256, 3 -> 9 -> 81 -> 6561, 4 -> 16 -> 256.
	count, err := Time[float64](x0, square, 100, 10)
	if err != nil {
		t.Fatal(err)
	}

	want := [][]uint{{11, 3}, {3, 2}}
	if diff := cmp.Diff(want, count.Rows()); diff != "" {
		t.Errorf("counts (-want +got):\n%s", diff)
	}
}

func TestTimeComplex(t *testing.T) {
	x0 := mustRows(t, [][]complex128{
		{0.5, 1 + 0.5i},
		{0.25 + 0.25i, complex(1.0/3.0, -5)},
	})
	f := Func[complex128](func(z complex128) complex128 { return z*z + 0.25 })

	count, err := Time[complex128](x0, f, 2, 6)
	if err != nil {
		t.Fatal(err)
	}

	want := [][]uint{{7, 2}, {7, 1}}
	if diff := cmp.Diff(want, count.Rows()); diff != "" {
		t.Errorf("counts (-want +got):\n%s", diff)
	}
}

func TestTimeDivergesOnLastStep(t *testing.T) {
	f := Func[float64](func(x float64) float64 { return x*x + 0.25 })

	for _, x := range []float64{0.75, 1} {
		// Just below |f(f(x))|, so the element crosses on the final step.
		threshold := math.Abs(f(f(x))) - 0.0001

		x0, err := numeric.New([]float64{x})
		if err != nil {
			t.Fatal(err)
		}

		count, err := Time[float64](x0, f, threshold, 2)
		if err != nil {
			t.Fatal(err)
		}
		if got := count.Data()[0]; got != 2 {
			t.Errorf("x0 = %v, threshold %v: count = %d, want 2", x, threshold, got)
		}
	}
}

func TestTimeThresholdIsStrict(t *testing.T) {
	x0, _ := numeric.New([]float64{2, -2, 3})
	identity := Func[float64](func(x float64) float64 { return x })

	count, err := Time[float64](x0, identity, 2, 5)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]uint{6, 6, 1}, count.Data()); diff != "" {
		t.Errorf("counts (-want +got):\n%s", diff)
	}
}

func TestTimeInitialValueNotTested(t *testing.T) {
	// 10 is beyond the threshold but maps back inside it.
	x0, _ := numeric.New([]float64{10})
	shrink := Func[float64](func(x float64) float64 { return x / 100 })

	count, err := Time[float64](x0, shrink, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if got := count.Data()[0]; got != 4 {
		t.Errorf("count = %d, want 4", got)
	}
}

func TestTimeInvalidBudget(t *testing.T) {
	x0, _ := numeric.New([]float64{1})
	f := Func[float64](func(x float64) float64 { return x })

	for _, maxIt := range []int{0, -3} {
		_, err := Time[float64](x0, f, 1, maxIt)
		if !errors.Is(err, ErrInvalidIterationBudget) {
			t.Errorf("maxIt = %d: got error %v, want ErrInvalidIterationBudget", maxIt, err)
		}
	}
}

func TestTimeFreezesDiverged(t *testing.T) {
	const threshold = 4.0
	x0, _ := numeric.New([]float64{0.5, 1.5, 2.5, 3.5})

	f := Func[float64](func(x float64) float64 {
		if math.Abs(x) > threshold {
			t.Errorf("map applied to diverged value %v", x)
		}
		return x * x * x
	})

	count, err := Time[float64](x0, f, threshold, 50)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]uint{51, 2, 1, 1}, count.Data()); diff != "" {
		t.Errorf("counts (-want +got):\n%s", diff)
	}
}

func TestTimeDoesNotModifyInput(t *testing.T) {
	x0, _ := numeric.New([]complex128{1, 2i, -0.5})
	before := x0.Clone()
	f := Func[complex128](func(z complex128) complex128 { return z*z + 1 })

	if _, err := Time[complex128](x0, f, 2, 10); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(before.Data(), x0.Data()); diff != "" {
		t.Errorf("input modified (-before +after):\n%s", diff)
	}
}

func TestTimeNaNNeverDiverges(t *testing.T) {
	x0, _ := numeric.New([]float64{math.NaN()})
	f := Func[float64](func(x float64) float64 { return x })

	count, err := Time[float64](x0, f, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if got := count.Data()[0]; got != 4 {
		t.Errorf("count = %d, want 4", got)
	}
}

func TestTimeEmpty(t *testing.T) {
	x0, _ := numeric.New([]float64{}, 0, 3)
	f := Func[float64](func(x float64) float64 { return x })

	count, err := Time[float64](x0, f, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{0, 3}, count.Shape()); diff != "" {
		t.Errorf("shape (-want +got):\n%s", diff)
	}
}

func julia(c complex128) Func[complex128] {
	return func(z complex128) complex128 { return z*z + c }
}

func juliaGrid(t *testing.T, resolution int) numeric.Array[complex128] {
	t.Helper()
	g, err := grid.Generate(grid.Extent{XMin: -1.6, XMax: 1.6, YMin: -1.2, YMax: 1.2}, resolution)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestTimeShapeAndRange(t *testing.T) {
	const maxIt = 30
	x0 := juliaGrid(t, 40)

	count, err := Time[complex128](x0, julia(-0.8+0.156i), 2, maxIt)
	if err != nil {
		t.Fatal(err)
	}

	if !numeric.SameShape(x0, count) {
		t.Fatalf("shape %v, want %v", count.Shape(), x0.Shape())
	}
	for i, c := range count.Data() {
		if c < 1 || c > maxIt+1 {
			t.Fatalf("count[%d] = %d, outside [1, %d]", i, c, maxIt+1)
		}
	}
}

func TestTimeStableUnderLargerBudget(t *testing.T) {
	x0 := juliaGrid(t, 32)
	f := julia(0.285 + 0.01i)

	short, err := Time[complex128](x0, f, 2, 10)
	if err != nil {
		t.Fatal(err)
	}
	long, err := Time[complex128](x0, f, 2, 40)
	if err != nil {
		t.Fatal(err)
	}

	for i, c := range short.Data() {
		if c <= 10 && long.Data()[i] != c {
			t.Errorf("element %d: count %d with budget 10, %d with budget 40", i, c, long.Data()[i])
		}
		if c == 11 && long.Data()[i] <= 10 {
			t.Errorf("element %d: undiverged with budget 10 but count %d with budget 40", i, long.Data()[i])
		}
	}
}

func TestTimeMatchesScalarLoop(t *testing.T) {
	const (
		maxIt     = 25
		threshold = 2.0
	)
	c := -0.4 + 0.6i
	x0 := juliaGrid(t, 24)

	count, err := Time[complex128](x0, julia(c), threshold, maxIt)
	if err != nil {
		t.Fatal(err)
	}

	for i, z := range x0.Data() {
		want := uint(maxIt + 1)
		for n := 1; n <= maxIt; n++ {
			z = z*z + c
			if cmplx.Abs(z) > threshold {
				want = uint(n)
				break
			}
		}
		if got := count.Data()[i]; got != want {
			t.Errorf("element %d: count %d, want %d", i, got, want)
		}
	}
}

func TestTimeParallelMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	data := make([]complex128, 5000)
	for i := range data {
		data[i] = complex(rng.Float64()*4-2, rng.Float64()*4-2)
	}
	x0, err := numeric.New(data, 50, 100)
	if err != nil {
		t.Fatal(err)
	}
	f := julia(-0.7269 + 0.1889i)

	sequential, err := Time[complex128](x0, f, 2, 60, WithWorkers(1))
	if err != nil {
		t.Fatal(err)
	}
	parallel, err := Time[complex128](x0, f, 2, 60, WithWorkers(7), WithMinChunk(13))
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(sequential.Data(), parallel.Data()); diff != "" {
		t.Errorf("parallel counts differ (-sequential +parallel):\n%s", diff)
	}
}

func TestTimeProgress(t *testing.T) {
	x0, _ := numeric.New([]float64{0.1, 5})
	f := Func[float64](func(x float64) float64 { return x * 2 })

	var steps []int
	_, err := Time[float64](x0, f, 1, 4, WithProgress(ProgressFunc(func(n, maxIt int) {
		if maxIt != 4 {
			t.Errorf("progress reported maxIt %d, want 4", maxIt)
		}
		steps = append(steps, n)
	})))
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]int{1, 2, 3, 4}, steps); diff != "" {
		t.Errorf("progress steps (-want +got):\n%s", diff)
	}
}

func TestTimeContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	x0, _ := numeric.New([]float64{0.5})
	f := Func[float64](func(x float64) float64 { return x })

	_, err := TimeContext[float64](ctx, x0, f, 1, 100, WithProgress(ProgressFunc(func(n, _ int) {
		if n == 3 {
			cancel()
		}
	})))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got error %v, want context.Canceled", err)
	}
}

func TestInvert(t *testing.T) {
	count, _ := numeric.New([]uint{11, 3, 3, 2, 1, 40}, 6)
	got, err := Invert(count, 10)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]uint{0, 8, 8, 9, 10, 0}, got.Data()); diff != "" {
		t.Errorf("inverted (-want +got):\n%s", diff)
	}
	if count.Data()[0] != 11 {
		t.Error("Invert modified its input")
	}
}

func TestHistogram(t *testing.T) {
	count, _ := numeric.New([]uint{11, 3, 3, 2, 12}, 5)
	got, err := Histogram(count, 10)
	if err != nil {
		t.Fatal(err)
	}

	want := make([]int, 12)
	want[2], want[3], want[11] = 1, 2, 1
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("histogram (-want +got):\n%s", diff)
	}
}

func TestInvalidBudgetHelpers(t *testing.T) {
	count, _ := numeric.New([]uint{1, 2, 3})

	for _, maxIt := range []int{0, -1, -5} {
		if _, err := Histogram(count, maxIt); !errors.Is(err, ErrInvalidIterationBudget) {
			t.Errorf("Histogram with maxIt %d: got error %v, want ErrInvalidIterationBudget", maxIt, err)
		}
		if _, err := Invert(count, maxIt); !errors.Is(err, ErrInvalidIterationBudget) {
			t.Errorf("Invert with maxIt %d: got error %v, want ErrInvalidIterationBudget", maxIt, err)
		}
	}
}

func TestChunks(t *testing.T) {
	tests := []struct {
		name string
		cfg  config
		n    int
		want [][2]int
	}{
		{"small", config{workers: 4, minChunk: 10}, 5, [][2]int{{0, 5}}},
		{"empty", config{workers: 4, minChunk: 10}, 0, [][2]int{{0, 0}}},
		{"capped", config{workers: 2, minChunk: 1}, 9, [][2]int{{0, 4}, {4, 9}}},
		{"by size", config{workers: 8, minChunk: 10}, 30, [][2]int{{0, 10}, {10, 20}, {20, 30}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, tc.cfg.chunks(tc.n)); diff != "" {
				t.Errorf("chunks (-want +got):\n%s", diff)
			}
		})
	}
}
