package photon

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/aclements/go-moremath/stats"
)

// headerLines precede the data: a free-text line and the metadata line.
const headerLines = 2

// Summary holds descriptive statistics over the first Length data lines.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64 // population standard deviation
	Min    float64
	Median float64
	Max    float64
}

// CalcStats reads exactly length data lines after the header of the file at
// path and summarizes them.
func CalcStats(path string, length int) (Summary, error) {
	defer TimeTrack(time.Now(), "calc stats")
	f, err := openInput(path)
	if err != nil {
		return Summary{}, err
	}
	defer f.Close()
	return CalcStatsFrom(path, f, length)
}

// CalcStatsFrom is CalcStats over an already opened input. Every line inside
// the window must be an integer; comments are not skipped here.
func CalcStatsFrom(name string, r io.Reader, length int) (Summary, error) {
	if length < 0 {
		return Summary{}, &FormatError{Path: name, Reason: fmt.Sprintf("negative measurement count %d", length)}
	}
	sc := newLineScanner(r)
	lineNo := 0
	for lineNo < headerLines && sc.Scan() {
		lineNo++
	}
	xs := make([]float64, 0, length)
	for len(xs) < length && sc.Scan() {
		lineNo++
		v, ok := ParseCount(sc.Text())
		if !ok {
			return Summary{}, &FormatError{Path: name, Line: lineNo,
				Reason: fmt.Sprintf("expected an integer photon count, got %q", strings.TrimSpace(sc.Text()))}
		}
		xs = append(xs, float64(v))
	}
	if err := sc.Err(); err != nil {
		return Summary{}, scanErr(err, name)
	}
	if len(xs) < length {
		return Summary{}, &FormatError{Path: name,
			Reason: fmt.Sprintf("header declares %d measurements but only %d data lines follow", length, len(xs))}
	}
	return Describe(xs), nil
}

// Describe computes the summary of xs. An empty sample yields NaN for every
// statistic.
func Describe(xs []float64) Summary {
	if len(xs) == 0 {
		nan := math.NaN()
		return Summary{Mean: nan, StdDev: nan, Min: nan, Median: nan, Max: nan}
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	s := stats.Sample{Xs: sorted, Sorted: true}

	n := float64(len(sorted))
	var popVar float64
	if len(sorted) > 1 {
		// Sample.Variance divides by n-1.
		popVar = s.Variance() * (n - 1) / n
	}
	lo, hi := s.Bounds()
	return Summary{
		Count:  len(sorted),
		Mean:   s.Mean(),
		StdDev: math.Sqrt(popVar),
		Min:    lo,
		Median: s.Quantile(0.5),
		Max:    hi,
	}
}
