package catalogue

import (
	"encoding/binary"
	"math"
)

// Lengths of the fixed-width name fields inside a star record. Longer names
// are truncated at encode time; the on-disk bytes are NUL padded so that the
// record stride is identical on every platform.
const (
	lenBayer     = 10 // Bayer letter, e.g. "alpha"
	lenBayerFull = 24 // full Bayer designation, e.g. "alpha-And"
	lenName      = 32 // proper name, e.g. "Alpheratz"
	lenVariable  = 24 // variable-star designation, e.g. "V337_Car"
	lenFlamsteed = 6  // Flamsteed number
)

// RecordSize is the fixed on-disk stride of one star record.
const RecordSize = 6*8 + 3*4 + lenBayer + lenBayerFull + lenName + lenVariable + lenFlamsteed

// StarRecord holds everything the chart renderer needs to know about one
// star. The binary encoding is little-endian and byte-identical on every
// platform, so the catalogue file is a portable fixed-stride array.
type StarRecord struct {
	RA       float64 // radians, J2000.0
	Dec      float64 // radians, J2000.0
	Mag      float64 // V-band magnitude
	MagBV    float64 // B-V colour index
	Parallax float64 // milliarcseconds
	Distance float64 // parsecs

	// Catalogue numbers; 0 means absent.
	HD  int32 // Henry Draper
	HIP int32 // Hipparcos
	HR  int32 // Yale Bright Star

	Bayer     string // Bayer letter
	BayerFull string // full Bayer designation
	Name      string // proper name
	Variable  string // variable-star designation
	Flamsteed string // Flamsteed number
}

// encode writes the record into buf, which must be at least RecordSize bytes.
// Name fields longer than their on-disk width are silently truncated.
func (r *StarRecord) encode(buf []byte) {
	le := binary.LittleEndian
	le.PutUint64(buf[0:], math.Float64bits(r.RA))
	le.PutUint64(buf[8:], math.Float64bits(r.Dec))
	le.PutUint64(buf[16:], math.Float64bits(r.Mag))
	le.PutUint64(buf[24:], math.Float64bits(r.MagBV))
	le.PutUint64(buf[32:], math.Float64bits(r.Parallax))
	le.PutUint64(buf[40:], math.Float64bits(r.Distance))
	le.PutUint32(buf[48:], uint32(r.HD))
	le.PutUint32(buf[52:], uint32(r.HIP))
	le.PutUint32(buf[56:], uint32(r.HR))
	off := 60
	off = putName(buf, off, r.Bayer, lenBayer)
	off = putName(buf, off, r.BayerFull, lenBayerFull)
	off = putName(buf, off, r.Name, lenName)
	off = putName(buf, off, r.Variable, lenVariable)
	putName(buf, off, r.Flamsteed, lenFlamsteed)
}

// decode reads the record from buf, which must be at least RecordSize bytes.
func (r *StarRecord) decode(buf []byte) {
	le := binary.LittleEndian
	r.RA = math.Float64frombits(le.Uint64(buf[0:]))
	r.Dec = math.Float64frombits(le.Uint64(buf[8:]))
	r.Mag = math.Float64frombits(le.Uint64(buf[16:]))
	r.MagBV = math.Float64frombits(le.Uint64(buf[24:]))
	r.Parallax = math.Float64frombits(le.Uint64(buf[32:]))
	r.Distance = math.Float64frombits(le.Uint64(buf[40:]))
	r.HD = int32(le.Uint32(buf[48:]))
	r.HIP = int32(le.Uint32(buf[52:]))
	r.HR = int32(le.Uint32(buf[56:]))
	off := 60
	r.Bayer, off = getName(buf, off, lenBayer)
	r.BayerFull, off = getName(buf, off, lenBayerFull)
	r.Name, off = getName(buf, off, lenName)
	r.Variable, off = getName(buf, off, lenVariable)
	r.Flamsteed, _ = getName(buf, off, lenFlamsteed)
}

func putName(buf []byte, off int, s string, width int) int {
	field := buf[off : off+width]
	for i := range field {
		field[i] = 0
	}
	if len(s) > width {
		s = s[:width]
	}
	copy(field, s)
	return off + width
}

func getName(buf []byte, off, width int) (string, int) {
	field := buf[off : off+width]
	end := 0
	for end < width && field[end] != 0 {
		end++
	}
	return string(field[:end]), off + width
}
