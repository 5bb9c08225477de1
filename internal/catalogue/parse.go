package catalogue

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// sourceReader streams the text star catalogue, decompressing on the fly
// when the file is gzipped.
type sourceReader struct {
	f  *os.File
	gz *gzip.Reader
	sc *bufio.Scanner
}

// openSource opens the text catalogue for one streaming pass. The builder
// opens the source twice, once per pass.
func openSource(path string) (*sourceReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open text star catalogue %v", path)
	}
	r := &sourceReader{f: f}
	var stream io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		r.gz, err = gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, errors.Wrapf(err, "read gzip header of %v", path)
		}
		stream = r.gz
	}
	r.sc = bufio.NewScanner(stream)
	r.sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return r, nil
}

// Next returns the next line of the catalogue. io.EOF signals the end of the
// stream.
func (r *sourceReader) Next() (string, error) {
	if r.sc.Scan() {
		return r.sc.Text(), nil
	}
	if err := r.sc.Err(); err != nil {
		return "", errors.Wrapf(err, "read text star catalogue %v", r.f.Name())
	}
	return "", io.EOF
}

func (r *sourceReader) Close() error {
	if r.gz != nil {
		_ = r.gz.Close()
	}
	return r.f.Close()
}

// errSkipLine marks catalogue lines that carry no usable star: blank lines
// and lines whose coordinates or magnitude do not parse. Such lines are
// skipped, not fatal.
var errSkipLine = errors.New("unusable catalogue line")

// parseStarLine extracts one star from a whitespace-delimited catalogue
// line. Field order matches the merged catalogue produced by the data
// pipeline: HD, HR, HIP, RA (degrees), Dec (degrees), magnitude, B-V
// colour, parallax, distance, then up to five name fields.
func parseStarLine(line string) (StarRecord, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return StarRecord{}, errSkipLine
	}
	if len(fields) < 9 {
		return StarRecord{}, errors.Wrapf(errSkipLine, "%d fields", len(fields))
	}

	nums := make([]float64, 9)
	for i := 0; i < 9; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil || math.IsNaN(v) {
			return StarRecord{}, errors.Wrapf(errSkipLine, "field %d %q", i, fields[i])
		}
		nums[i] = v
	}

	r := StarRecord{
		HD:       int32(nums[0]),
		HR:       int32(nums[1]),
		HIP:      int32(nums[2]),
		RA:       nums[3] / 180 * math.Pi,
		Dec:      nums[4] / 180 * math.Pi,
		Mag:      nums[5],
		MagBV:    nums[6],
		Parallax: nums[7],
		Distance: nums[8],
	}

	names := []*string{&r.Bayer, &r.BayerFull, &r.Name, &r.Variable, &r.Flamsteed}
	for i, dst := range names {
		if 9+i < len(fields) {
			*dst = fields[9+i]
		}
	}
	return r, nil
}
