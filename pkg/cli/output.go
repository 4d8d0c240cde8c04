package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/willbeason/escape-time/pkg/escape"
	"github.com/willbeason/escape-time/pkg/numeric"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NewProgress returns a Progress redrawing "label n/maxIt" on w, or nil if
// fd is not a terminal. Redirected output stays free of carriage returns.
func NewProgress(w io.Writer, fd int, label string) escape.Progress {
	if !term.IsTerminal(fd) {
		return nil
	}
	return &lineProgress{w: w, label: label}
}

type lineProgress struct {
	w     io.Writer
	label string
}

func (p *lineProgress) Step(n, maxIt int) {
	fmt.Fprintf(p.w, "\r%s %d/%d", p.label, n, maxIt)
	if n == maxIt {
		fmt.Fprintln(p.w)
	}
}

// WithProgress appends a progress option to opts when p is non-nil.
func WithProgress(opts []escape.Option, p escape.Progress) []escape.Option {
	if p == nil {
		return opts
	}
	return append(opts, escape.WithProgress(p))
}

// A Summary describes one escape-time field.
type Summary struct {
	MaxIterations int
	Points        int
	Bounded       int

	// Histogram[k] is the number of points with count k.
	Histogram []int
}

func Summarize(counts numeric.Array[uint], maxIt int) (Summary, error) {
	hist, err := escape.Histogram(counts, maxIt)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		MaxIterations: maxIt,
		Points:        counts.Len(),
		Bounded:       hist[maxIt+1],
		Histogram:     hist,
	}, nil
}

// BoundedShare is the fraction of points that never diverged.
func (s Summary) BoundedShare() float64 {
	if s.Points == 0 {
		return 0
	}
	return float64(s.Bounded) / float64(s.Points)
}

// histogramWidth is the widest histogram bar, in characters.
const histogramWidth = 50

// Print writes the totals and a text histogram of escape counts.
func (s Summary) Print(w io.Writer) {
	p := message.NewPrinter(language.English)

	p.Fprintf(w, "points:  %d\n", s.Points)
	p.Fprintf(w, "bounded: %d (%.2f)\n", s.Bounded, s.BoundedShare())

	// Counts 1 through MaxIterations; the last entry is the bounded points.
	last := min(s.MaxIterations, len(s.Histogram)-2)

	largest := 0
	for k := 1; k <= last; k++ {
		largest = max(largest, s.Histogram[k])
	}
	if largest == 0 {
		return
	}

	for k := 1; k <= last; k++ {
		h := s.Histogram[k]
		if h == 0 {
			continue
		}
		bar := strings.Repeat("#", max(1, h*histogramWidth/largest))
		p.Fprintf(w, "%4d %10d %s\n", k, h, bar)
	}
}
