package photon

import (
	"io"
	"time"

	"github.com/pkg/errors"
)

// Frequency maps a photon count (the index) to the number of divisions that
// recorded it.
type Frequency []int

// Total is the number of counted lines.
func (f Frequency) Total() int {
	n := 0
	for _, c := range f {
		n += c
	}
	return n
}

// CountFrequencies scans every line of the file at path and tallies the
// numeric ones into a table of maxCount+1 buckets.
func CountFrequencies(path string, maxCount int) (Frequency, error) {
	defer TimeTrack(time.Now(), "count frequencies")
	f, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return CountFrequenciesFrom(path, f, maxCount)
}

// CountFrequenciesFrom is CountFrequencies over an already opened input.
// Header lines are expected to fail the numeric test. Numeric values outside
// [0, maxCount] are skipped with a warning.
func CountFrequenciesFrom(name string, r io.Reader, maxCount int) (Frequency, error) {
	if maxCount < 0 || maxCount > MaxPhotonCount {
		return nil, errors.Errorf("count frequencies %s: max count %d outside [0,%d]", name, maxCount, MaxPhotonCount)
	}
	table := make(Frequency, maxCount+1)
	sc := newLineScanner(r)
	for lineNo := 1; sc.Scan(); lineNo++ {
		k, ok := ParseCount(sc.Text())
		if !ok {
			continue
		}
		if k < 0 || k > maxCount {
			Warnf("%s:%d: photon count %d outside [0,%d], skipped", name, lineNo, k, maxCount)
			continue
		}
		table[k]++
	}
	if err := sc.Err(); err != nil {
		return nil, scanErr(err, name)
	}
	return table, nil
}
