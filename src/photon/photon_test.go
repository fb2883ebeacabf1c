package photon

import (
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeMeasurements writes lines to a temp file and returns its path.
func writeMeasurements(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "measurements.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func TestParseCount(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"5", 5, true},
		{" 12 \r", 12, true},
		{"+3", 3, true},
		{"-4", -4, true},
		{"0", 0, true},
		{"", 0, false},
		{"# comment", 0, false},
		{"1.5", 0, false},
		{"100,5", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseCount(tc.in)
		assert.Equal(t, tc.ok, ok, "ok for %q", tc.in)
		assert.Equal(t, tc.want, got, "value for %q", tc.in)
	}
}

func TestReadMetadata_HeaderOrder(t *testing.T) {
	path := writeMeasurements(t, "run of 9-15-18", "100,5")
	md, err := ReadMetadata(path)
	require.NoError(t, err)
	assert.Equal(t, 5, md.DivisionMs)
	assert.Equal(t, 100, md.Length)
	assert.Equal(t, 0, md.MaxCount)
}

func TestReadMetadata_MaxScansWholeFile(t *testing.T) {
	// the maximum sits beyond the declared length and after a comment
	path := writeMeasurements(t, "title", "3,10", "2", "0", "2", "# tail", "4", "17", "1")
	md, err := ReadMetadata(path)
	require.NoError(t, err)
	assert.Equal(t, 3, md.Length)
	assert.Equal(t, 10, md.DivisionMs)
	assert.Equal(t, 17, md.MaxCount)
}

func TestReadMetadata_NumericTitleCountsTowardMax(t *testing.T) {
	path := writeMeasurements(t, "42", "1,5", "3")
	md, err := ReadMetadata(path)
	require.NoError(t, err)
	assert.Equal(t, 42, md.MaxCount)
}

func TestReadMetadata_FormatErrors(t *testing.T) {
	cases := map[string][]string{
		"missing":      {"only a title"},
		"one field":    {"title", "100"},
		"three fields": {"title", "100,5,7"},
		"not integer":  {"title", "100,five"},
		"float":        {"title", "1.5,5"},
		"negative":     {"title", "-1,5"},
	}
	for name, lines := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadMetadata(writeMeasurements(t, lines...))
			var fe *FormatError
			require.True(t, errors.As(err, &fe), "want FormatError, got %v", err)
			assert.Equal(t, metadataLine, fe.Line)
		})
	}
}

func TestReadMetadata_MissingFile(t *testing.T) {
	_, err := ReadMetadata(filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestReadMetadataFrom_Reader(t *testing.T) {
	md, err := ReadMetadataFrom("mem", strings.NewReader("t\n4,20\n1\n9\n"))
	require.NoError(t, err)
	assert.Equal(t, Metadata{DivisionMs: 20, Length: 4, MaxCount: 9}, md)
}

func TestCountFrequencies_SkipsComments(t *testing.T) {
	path := writeMeasurements(t, "title", "3,10", "2", "0", "# pause", "2", "4", "", "1", "2")
	freq, err := CountFrequencies(path, 4)
	require.NoError(t, err)
	assert.Equal(t, Frequency{1, 1, 3, 0, 1}, freq)
	// total equals the number of integer lines, not the declared length
	assert.Equal(t, 6, freq.Total())
}

func TestCountFrequencies_OutOfRangeSkipped(t *testing.T) {
	freq, err := CountFrequenciesFrom("mem", strings.NewReader("t\n2,5\n1\n-1\n7\n"), 2)
	require.NoError(t, err)
	assert.Equal(t, Frequency{0, 1, 0}, freq)
}

func TestCountFrequencies_EmptyDataHasSingleBucket(t *testing.T) {
	freq, err := CountFrequenciesFrom("mem", strings.NewReader("t\n0,5\n"), 0)
	require.NoError(t, err)
	assert.Equal(t, Frequency{0}, freq)
}

func TestCountFrequencies_NegativeMax(t *testing.T) {
	_, err := CountFrequenciesFrom("mem", strings.NewReader(""), -1)
	assert.Error(t, err)
}

func TestCalcStats_MeanAndPopulationStdDev(t *testing.T) {
	path := writeMeasurements(t, "title", "4,5", "1", "1", "2", "3")
	s, err := CalcStats(path, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 1.75, s.Mean, 1e-12)
	assert.InDelta(t, 0.8292, s.StdDev, 1e-4)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 3.0, s.Max)
}

func TestCalcStats_OnlyFirstLengthLines(t *testing.T) {
	path := writeMeasurements(t, "title", "3,10", "2", "0", "2", "4", "1", "2")
	s, err := CalcStats(path, 3)
	require.NoError(t, err)
	assert.InDelta(t, 4.0/3.0, s.Mean, 1e-9)
	assert.InDelta(t, 0.9428, s.StdDev, 1e-4)
	assert.Equal(t, 2.0, s.Median)
}

func TestCalcStats_SingleValue(t *testing.T) {
	s, err := CalcStatsFrom("mem", strings.NewReader("t\n1,5\n7\n"), 1)
	require.NoError(t, err)
	assert.Equal(t, 7.0, s.Mean)
	assert.Equal(t, 0.0, s.StdDev)
}

func TestCalcStats_CommentInsideWindow(t *testing.T) {
	path := writeMeasurements(t, "title", "3,10", "2", "# oops", "2")
	_, err := CalcStats(path, 3)
	var fe *FormatError
	require.True(t, errors.As(err, &fe), "want FormatError, got %v", err)
	assert.Equal(t, 4, fe.Line)
}

func TestCalcStats_TooFewLines(t *testing.T) {
	path := writeMeasurements(t, "title", "5,10", "2", "0")
	_, err := CalcStats(path, 5)
	var fe *FormatError
	require.True(t, errors.As(err, &fe), "want FormatError, got %v", err)
	assert.Contains(t, fe.Reason, "only 2")
}

func TestCalcStats_ZeroLength(t *testing.T) {
	s, err := CalcStatsFrom("mem", strings.NewReader("t\n0,5\n"), 0)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(s.Mean))
	assert.True(t, math.IsNaN(s.StdDev))
}

func TestNormalize(t *testing.T) {
	probs, err := Normalize(Frequency{2, 1, 1}, 4)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.25, 0.25}, probs)

	sum := 0.0
	for _, p := range probs {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
}

func TestNormalize_ZeroTotal(t *testing.T) {
	probs, err := Normalize(Frequency{1, 2}, 0)
	assert.Nil(t, probs)
	var ae *ArithmeticError
	require.True(t, errors.As(err, &ae), "want ArithmeticError, got %v", err)
}

func TestAnalyze_EndToEnd(t *testing.T) {
	path := writeMeasurements(t, "title", "3,10", "2", "0", "2", "4", "1", "2")
	res, err := Analyze(path)
	require.NoError(t, err)
	assert.Equal(t, Metadata{DivisionMs: 10, Length: 3, MaxCount: 4}, res.Metadata)
	assert.InDelta(t, 1.333, res.Summary.Mean, 1e-3)
	assert.InDelta(t, 0.9428, res.Summary.StdDev, 1e-4)
	assert.Equal(t, Frequency{1, 1, 3, 0, 1}, res.Frequency)
	// normalized by the declared length, so the distribution sums to 2
	require.Len(t, res.Probabilities, 5)
	assert.InDelta(t, 1.0, res.Probabilities[2], 1e-12)
}

func TestAnalyze_ZeroLengthIsArithmeticError(t *testing.T) {
	path := writeMeasurements(t, "title", "0,10", "2")
	_, err := Analyze(path)
	var ae *ArithmeticError
	require.True(t, errors.As(err, &ae), "want ArithmeticError, got %v", err)
}

func TestAnalyze_StatisticsFormatErrorPropagates(t *testing.T) {
	path := writeMeasurements(t, "title", "2,10", "x", "2")
	_, err := Analyze(path)
	var fe *FormatError
	require.True(t, errors.As(err, &fe), "want FormatError, got %v", err)
	assert.Contains(t, err.Error(), "statistics")
}

func TestReadMetadata_CountAboveLimit(t *testing.T) {
	for _, big := range []string{"9223372036854775807", "10000000000", "16777217"} {
		t.Run(big, func(t *testing.T) {
			path := writeMeasurements(t, "t", "2,5", "3", big)
			_, err := ReadMetadata(path)
			var fe *FormatError
			require.True(t, errors.As(err, &fe), "want FormatError, got %v", err)
			assert.Equal(t, 4, fe.Line)

			_, err = Analyze(path)
			require.True(t, errors.As(err, &fe), "want FormatError from Analyze, got %v", err)
		})
	}
}

func TestReadMetadata_CountAtLimit(t *testing.T) {
	md, err := ReadMetadataFrom("mem", strings.NewReader("t\n1,5\n16777216\n"))
	require.NoError(t, err)
	assert.Equal(t, MaxPhotonCount, md.MaxCount)
}

func TestCountFrequencies_MaxAboveLimit(t *testing.T) {
	_, err := CountFrequenciesFrom("mem", strings.NewReader(""), MaxPhotonCount+1)
	assert.Error(t, err)
}
