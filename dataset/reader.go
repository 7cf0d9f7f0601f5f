package dataset

import (
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ppistat/poisample/model"
)

// FieldReader is just a simple reader for whitespace-delimited files.
type FieldReader struct {
	Pos    int
	Fields []string
}

// NewFieldReader constructs a new field reader around the given data
func NewFieldReader(data string) *FieldReader {
	return &FieldReader{0, strings.Fields(data)}
}

// Read returns the next space-delimited field/token
func (fr *FieldReader) Read() (string, error) {
	if fr.Pos >= len(fr.Fields) {
		return "", io.EOF
	}
	p := fr.Pos
	fr.Pos++
	return fr.Fields[p], nil
}

// ReadFloat reads the next token as a float
func (fr *FieldReader) ReadFloat() (float64, error) {
	s, err := fr.Read()
	if err != nil {
		return 0, err
	}

	return strconv.ParseFloat(s, 64)
}

// Preprocessor for times files: remove lines that are blank or
// comments. A '#' starts a comment that runs to the end of the line,
// whether it opens the line or trails data. Return the new buffer and
// the count of "real" lines found.
func timesPreprocess(data []byte) (string, int) {
	lines := strings.Split(string(data), "\n")

	newPos := 0
	for _, ln := range lines {
		if idx := strings.IndexByte(ln, '#'); idx >= 0 {
			ln = ln[:idx]
		}
		ln = strings.TrimSpace(ln)
		if len(ln) < 1 {
			continue
		}

		lines[newPos] = ln
		newPos++
	}

	return strings.Join(lines[:newPos], "\n"), newPos
}

// ReadTimes parses event times from a plain text buffer: one or more
// whitespace-separated numbers per line, '#' comments allowed. The
// times are sorted ascending before being returned, so files may list
// events in any order.
func ReadTimes(data []byte) (model.Observations, error) {
	text, lineCount := timesPreprocess(data)
	if lineCount < 1 {
		return nil, errors.Errorf("No event times found in file")
	}

	fr := NewFieldReader(text)
	obs := make(model.Observations, 0, len(fr.Fields))

	for {
		v, err := fr.ReadFloat()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "Could not parse event time %d", fr.Pos)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.Errorf("Event time %d is not finite", fr.Pos)
		}

		obs = append(obs, v)
	}

	if len(obs) < 1 {
		return nil, errors.Errorf("No event times found in file")
	}

	sort.Float64s(obs)
	return obs, nil
}

// ReadTimesFile is ReadTimes over the contents of a file.
func ReadTimesFile(path string) (model.Observations, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not read times file %s", path)
	}

	obs, err := ReadTimes(data)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not parse times file %s", path)
	}
	return obs, nil
}
