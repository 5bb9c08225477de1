package catalogue

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

// testScheme is a small three-level tiling used throughout the tests.
var testScheme = Scheme{
	{4.0, 1, 1},
	{8.0, 4, 8},
	{12.0, 16, 32},
}

// starLine formats one text catalogue line the way the data pipeline does:
// HD, HR, HIP, RA (degrees), Dec (degrees), magnitude, B-V, parallax,
// distance, then optional name fields.
func starLine(id int, raDeg, decDeg, mag float64, names ...string) string {
	s := fmt.Sprintf("%d %d %d %v %v %v 0.5 10 100", id, id, id, raDeg, decDeg, mag)
	if len(names) > 0 {
		s += " " + strings.Join(names, " ")
	}
	return s
}

// randomStarLines generates n stars distributed uniformly over the sphere
// with magnitudes uniform in [0, magCap). The same seed always produces the
// same catalogue.
func randomStarLines(n int, seed int64, magCap float64) []string {
	rng := rand.New(rand.NewSource(seed))
	lines := make([]string, n)
	for i := range lines {
		ra := rng.Float64() * 360
		dec := math.Asin(2*rng.Float64()-1) * 180 / math.Pi
		mag := rng.Float64() * magCap
		lines[i] = starLine(i+1, ra, dec, mag)
	}
	return lines
}

func writeSource(t *testing.T, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stars.dat")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func gzipFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	gz := gzip.NewWriter(out)
	if _, err := io.Copy(gz, in); err != nil {
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}
	return out.Close()
}

func buildTestCatalogue(t *testing.T, lines []string, scheme Scheme) *Catalogue {
	t.Helper()
	src := writeSource(t, lines)
	bin := filepath.Join(filepath.Dir(src), "stars.bin")
	if err := Build(src, bin, scheme); err != nil {
		t.Fatalf("Build: %v", err)
	}
	cat, err := Open(bin, scheme)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		_ = cat.Close()
	})
	return cat
}
