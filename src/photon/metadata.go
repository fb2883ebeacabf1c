package photon

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// MaxPhotonCount is the largest photon count accepted in a file. The frequency
// table has one bucket per count, so larger values are rejected before
// allocation.
const MaxPhotonCount = 1 << 24

// metadataLine is the 1-based line holding "<length>,<division_ms>".
const metadataLine = 2

// Metadata is the header information of a measurement file plus the largest
// photon count found anywhere in it.
type Metadata struct {
	DivisionMs int // size of one time division in milliseconds
	Length     int // declared number of data lines used for statistics
	MaxCount   int // largest numeric line in the whole file, 0 if none
}

// ReadMetadata parses the header of the file at path and pre-scans the whole
// file for the maximum photon count.
func ReadMetadata(path string) (Metadata, error) {
	defer TimeTrack(time.Now(), "read metadata")
	f, err := openInput(path)
	if err != nil {
		return Metadata{}, err
	}
	defer f.Close()
	return ReadMetadataFrom(path, f)
}

// ReadMetadataFrom is ReadMetadata over an already opened input. name is only
// used in error messages. The reader is rewound once for the maximum scan.
func ReadMetadataFrom(name string, r io.ReadSeeker) (Metadata, error) {
	var md Metadata
	header, found, err := lineAt(r, metadataLine)
	if err != nil {
		return md, scanErr(err, name)
	}
	if !found {
		return md, &FormatError{Path: name, Line: metadataLine, Reason: "missing metadata line \"<length>,<division_ms>\""}
	}
	md.Length, md.DivisionMs, err = parseHeader(header)
	if err != nil {
		return md, &FormatError{Path: name, Line: metadataLine, Reason: "malformed metadata line", Err: err}
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return md, errors.Wrapf(err, "rewind %s", name)
	}
	sc := newLineScanner(r)
	for lineNo := 1; sc.Scan(); lineNo++ {
		v, ok := ParseCount(sc.Text())
		if !ok || v <= md.MaxCount {
			continue
		}
		if v > MaxPhotonCount {
			return md, &FormatError{Path: name, Line: lineNo,
				Reason: fmt.Sprintf("photon count %d exceeds the limit of %d", v, MaxPhotonCount)}
		}
		md.MaxCount = v
	}
	if err := sc.Err(); err != nil {
		return md, scanErr(err, name)
	}
	Debugf("metadata %s: length=%d division=%dms max=%d", name, md.Length, md.DivisionMs, md.MaxCount)
	return md, nil
}

// lineAt returns the n-th (1-based) line of r.
func lineAt(r io.Reader, n int) (string, bool, error) {
	sc := newLineScanner(r)
	for i := 1; sc.Scan(); i++ {
		if i == n {
			return sc.Text(), true, nil
		}
	}
	return "", false, sc.Err()
}

// parseHeader splits "<length>,<division_ms>". The on-disk order is length
// first.
func parseHeader(line string) (length, divisionMs int, err error) {
	fields := strings.Split(line, ",")
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("want 2 comma-separated fields, got %d in %q", len(fields), strings.TrimSpace(line))
	}
	length, ok := ParseCount(fields[0])
	if !ok {
		return 0, 0, fmt.Errorf("length %q is not an integer", strings.TrimSpace(fields[0]))
	}
	divisionMs, ok = ParseCount(fields[1])
	if !ok {
		return 0, 0, fmt.Errorf("division %q is not an integer", strings.TrimSpace(fields[1]))
	}
	if length < 0 {
		return 0, 0, fmt.Errorf("length %d is negative", length)
	}
	return length, divisionMs, nil
}
