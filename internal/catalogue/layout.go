package catalogue

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// FormatVersion is the binary catalogue format version. A file carrying any
// other version is treated as absent and rebuilt from the text catalogue.
const FormatVersion = 3

// TileEntry locates one tile's star records within the binary file.
// FilePosition is measured in record strides from StarRegionStart, not in
// bytes.
type TileEntry struct {
	StarCount    int32
	FilePosition int32
}

// Header is the fixed preamble of the binary catalogue. The level start
// indexes and the flat tile directory follow it immediately; the star
// record region begins at StarRegionStart.
type Header struct {
	Version         int32
	StarRegionStart uint64
	LevelCount      int32
	TileCount       int32
	LevelStart      []int32
	Tiles           []TileEntry
}

// headerSize returns the byte length of the serialized header, including the
// level start indexes and tile directory.
func headerSize(levelCount, tileCount int) int64 {
	return 4 + 8 + 4 + 4 + 4*int64(levelCount) + 8*int64(tileCount)
}

// Size returns the byte length of this header on disk.
func (h *Header) Size() int64 {
	return headerSize(int(h.LevelCount), int(h.TileCount))
}

// tileByteOffset returns the absolute byte offset of the first record of the
// tile at the given flat directory index. All offset arithmetic on the star
// region goes through here.
func (h *Header) tileByteOffset(index int) int64 {
	return int64(h.StarRegionStart) + int64(h.Tiles[index].FilePosition)*RecordSize
}

// WriteTo serializes the header. Writing is idempotent: the same header
// always produces the same bytes.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, h.Size())
	le := binary.LittleEndian
	le.PutUint32(buf[0:], uint32(h.Version))
	le.PutUint64(buf[4:], h.StarRegionStart)
	le.PutUint32(buf[12:], uint32(h.LevelCount))
	le.PutUint32(buf[16:], uint32(h.TileCount))
	off := 20
	for _, s := range h.LevelStart {
		le.PutUint32(buf[off:], uint32(s))
		off += 4
	}
	for _, t := range h.Tiles {
		le.PutUint32(buf[off:], uint32(t.StarCount))
		le.PutUint32(buf[off+4:], uint32(t.FilePosition))
		off += 8
	}
	n, err := w.Write(buf)
	return int64(n), err
}

// readHeader reads and validates the header from the start of r. A short
// read anywhere in the header or directory is reported as an error; a
// version mismatch is reported as errVersionMismatch so that callers can
// trigger a rebuild.
var errVersionMismatch = errors.New("catalogue version mismatch")

func readHeader(r io.Reader) (*Header, error) {
	fixed := make([]byte, 20)
	if _, err := io.ReadFull(r, fixed); err != nil {
		return nil, errors.Wrap(err, "read catalogue header")
	}
	le := binary.LittleEndian
	h := &Header{
		Version:         int32(le.Uint32(fixed[0:])),
		StarRegionStart: le.Uint64(fixed[4:]),
		LevelCount:      int32(le.Uint32(fixed[12:])),
		TileCount:       int32(le.Uint32(fixed[16:])),
	}
	if h.Version != FormatVersion {
		return nil, errVersionMismatch
	}
	if h.LevelCount < 0 || h.TileCount < 0 {
		return nil, errors.Errorf("catalogue header corrupt: %d levels, %d tiles", h.LevelCount, h.TileCount)
	}

	rest := make([]byte, 4*int(h.LevelCount)+8*int(h.TileCount))
	if _, err := io.ReadFull(r, rest); err != nil {
		return nil, errors.Wrap(err, "read catalogue tile directory")
	}
	h.LevelStart = make([]int32, h.LevelCount)
	off := 0
	for i := range h.LevelStart {
		h.LevelStart[i] = int32(le.Uint32(rest[off:]))
		off += 4
	}
	h.Tiles = make([]TileEntry, h.TileCount)
	for i := range h.Tiles {
		h.Tiles[i].StarCount = int32(le.Uint32(rest[off:]))
		h.Tiles[i].FilePosition = int32(le.Uint32(rest[off+4:]))
		off += 8
	}
	return h, nil
}
