package catalogue

import (
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Catalogue is an open binary star catalogue. The header and tile directory
// are held in memory for the lifetime of the handle; star records are read
// lazily, tile by tile. A Catalogue is safe for sequential use by a single
// render; concurrent renders must each open their own handle.
type Catalogue struct {
	path   string
	f      *os.File
	header *Header
	scheme Scheme
}

// Open opens an existing binary catalogue and eagerly reads its header and
// tile directory. It fails if the file is absent, truncated, or carries the
// wrong format version; recovering by rebuilding is the caller's job (see
// OpenOrBuild).
func Open(path string, scheme Scheme) (*Catalogue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open binary star catalogue %v", path)
	}

	header, err := readHeader(f)
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "binary star catalogue %v", path)
	}
	if int(header.LevelCount) != len(scheme) || int(header.TileCount) != scheme.TileCount() {
		_ = f.Close()
		return nil, errors.Wrapf(errVersionMismatch, "binary star catalogue %v tiling mismatch", path)
	}

	return &Catalogue{path: path, f: f, header: header, scheme: scheme}, nil
}

// OpenOrBuild opens the binary catalogue at binPath, transparently
// rebuilding it from the text catalogue at srcPath when it is missing or
// carries a stale format version. This is the only condition recovered
// silently; a rebuild that fails, or a rebuilt file that still does not
// open, is fatal to the render.
func OpenOrBuild(srcPath, binPath string, scheme Scheme) (*Catalogue, error) {
	cat, err := Open(binPath, scheme)
	if err == nil {
		return cat, nil
	}
	if !os.IsNotExist(errors.Cause(err)) && !errors.Is(err, errVersionMismatch) {
		return nil, err
	}

	log.Infof("binary star catalogue %v missing or stale, rebuilding from %v", binPath, srcPath)
	if err := Build(srcPath, binPath, scheme); err != nil {
		return nil, err
	}
	return Open(binPath, scheme)
}

// Close releases the underlying file handle.
func (c *Catalogue) Close() error {
	return c.f.Close()
}

// Path returns the location of the catalogue file.
func (c *Catalogue) Path() string {
	return c.path
}

// Scheme returns the tiling scheme the catalogue was built with.
func (c *Catalogue) Scheme() Scheme {
	return c.scheme
}

// TileEntry returns the directory entry for the given tile.
func (c *Catalogue) TileEntry(id TileID) TileEntry {
	return c.header.Tiles[c.tileIndex(id)]
}

// TotalStars returns the number of star records in the catalogue.
func (c *Catalogue) TotalStars() int {
	n := 0
	for _, t := range c.header.Tiles {
		n += int(t.StarCount)
	}
	return n
}

func (c *Catalogue) tileIndex(id TileID) int {
	lev := c.scheme[id.Level]
	return int(c.header.LevelStart[id.Level]) + id.DecIndex*lev.RABins + id.RAIndex
}

// ReadTile reads all star records belonging to one tile. Reads are pure:
// tiles may be read independently, in any order, any number of times.
func (c *Catalogue) ReadTile(id TileID) ([]StarRecord, error) {
	index := c.tileIndex(id)
	entry := c.header.Tiles[index]
	if entry.StarCount == 0 {
		return nil, nil
	}

	buf := make([]byte, int(entry.StarCount)*RecordSize)
	if _, err := c.f.ReadAt(buf, c.header.tileByteOffset(index)); err != nil {
		return nil, errors.Wrapf(err, "read tile %v of %v", id, c.path)
	}

	records := make([]StarRecord, entry.StarCount)
	for i := range records {
		records[i].decode(buf[i*RecordSize:])
	}
	return records, nil
}
