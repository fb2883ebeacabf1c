package photon

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const maxLineBytes = 1024 * 1024

// ParseCount attempts to read line as a single base-10 integer, ignoring
// surrounding white space. ok is false for comments, blank lines and anything
// else that is not an integer.
func ParseCount(line string) (value int, ok bool) {
	v, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, false
	}
	return v, true
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return sc
}

func openInput(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	return f, nil
}

func scanErr(err error, name string) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, "read %s", name)
}
