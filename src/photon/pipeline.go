// Package photon reads photon-count measurement files and derives the
// frequency table, probability distribution and summary statistics.
//
// A measurement file has a free-text first line, a "<length>,<division_ms>"
// second line, and then one photon count per line. Non-numeric lines after
// the header are comments for the frequency scan but are errors inside the
// first length data lines, which feed the statistics.
package photon

import (
	"time"

	"github.com/pkg/errors"
)

// Result is everything derived from one measurement file.
type Result struct {
	Path          string
	Metadata      Metadata
	Summary       Summary
	Frequency     Frequency
	Probabilities []float64
}

// Analyze runs metadata, statistics, frequency and normalization stages over
// the file at path. Each stage opens the file on its own.
func Analyze(path string) (*Result, error) {
	defer TimeTrack(time.Now(), "analyze "+path)
	md, err := ReadMetadata(path)
	if err != nil {
		return nil, errors.Wrap(err, "metadata")
	}
	sum, err := CalcStats(path, md.Length)
	if err != nil {
		return nil, errors.Wrap(err, "statistics")
	}
	freq, err := CountFrequencies(path, md.MaxCount)
	if err != nil {
		return nil, errors.Wrap(err, "frequency")
	}
	probs, err := Normalize(freq, md.Length)
	if err != nil {
		return nil, errors.Wrap(err, "distribution")
	}
	if counted := freq.Total(); counted != md.Length {
		Warnf("%s: counted %d photon lines but header declares %d; probabilities use the declared count", path, counted, md.Length)
	}
	Infof("%s: %d measurements of %dms, mean=%.2f std=%.2f max=%d", path, md.Length, md.DivisionMs, sum.Mean, sum.StdDev, md.MaxCount)
	return &Result{
		Path:          path,
		Metadata:      md,
		Summary:       sum,
		Frequency:     freq,
		Probabilities: probs,
	}, nil
}
