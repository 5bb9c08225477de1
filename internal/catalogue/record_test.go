package catalogue

import (
	"strings"
	"testing"
)

// The record stride is part of the on-disk format; changing it requires a
// format version bump.
func TestRecordSize(t *testing.T) {
	if RecordSize != 156 {
		t.Fatalf("RecordSize = %d, want 156", RecordSize)
	}
}

func TestRecordEncodeDecode(t *testing.T) {
	in := StarRecord{
		RA:       5.1234567890123,
		Dec:      -1.0203040506070,
		Mag:      -1.46,
		MagBV:    0.009,
		Parallax: 379.21,
		Distance: 2.64,
		HD:       48915,
		HIP:      32349,
		HR:       2491,

		Bayer:     "alpha",
		BayerFull: "alpha-CMa",
		Name:      "Sirius",
		Variable:  "-",
		Flamsteed: "9",
	}

	buf := make([]byte, RecordSize)
	in.encode(buf)

	var out StarRecord
	out.decode(buf)
	if out != in {
		t.Errorf("decoded record %+v, want %+v", out, in)
	}
}

// Overlong name fields truncate to the on-disk width; short ones come back
// without the NUL padding.
func TestRecordNameTruncation(t *testing.T) {
	in := StarRecord{
		Bayer:     strings.Repeat("b", 15),
		BayerFull: strings.Repeat("f", 30),
		Name:      strings.Repeat("n", 40),
		Variable:  strings.Repeat("v", 25),
		Flamsteed: "123456789",
	}

	buf := make([]byte, RecordSize)
	in.encode(buf)

	var out StarRecord
	out.decode(buf)
	if out.Bayer != in.Bayer[:10] {
		t.Errorf("Bayer %q, want %q", out.Bayer, in.Bayer[:10])
	}
	if out.BayerFull != in.BayerFull[:24] {
		t.Errorf("BayerFull %q, want %q", out.BayerFull, in.BayerFull[:24])
	}
	if out.Name != in.Name[:32] {
		t.Errorf("Name %q, want %q", out.Name, in.Name[:32])
	}
	if out.Variable != in.Variable[:24] {
		t.Errorf("Variable %q, want %q", out.Variable, in.Variable[:24])
	}
	if out.Flamsteed != in.Flamsteed[:6] {
		t.Errorf("Flamsteed %q, want %q", out.Flamsteed, in.Flamsteed[:6])
	}
}

// Encoding into a dirty buffer must not leak bytes from a previous record.
func TestRecordEncodeClearsNameFields(t *testing.T) {
	long := StarRecord{Name: strings.Repeat("x", 32)}
	short := StarRecord{Name: "y"}

	buf := make([]byte, RecordSize)
	long.encode(buf)
	short.encode(buf)

	var out StarRecord
	out.decode(buf)
	if out.Name != "y" {
		t.Errorf("Name %q after re-encode, want %q", out.Name, "y")
	}
}
