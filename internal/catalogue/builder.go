package catalogue

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Build converts the text star catalogue at srcPath into the tiled binary
// catalogue at dstPath. It makes two streaming passes over the source: the
// first counts how many stars fall into each tile, the second writes every
// record directly to its final offset. Because both passes consume the
// source in the same order, placement is a stable counting sort: stars keep
// their relative order within each tile.
//
// The file is assembled in a temporary file beside dstPath and renamed into
// place on success, so a reader can never observe a version-tagged file
// whose star region is incomplete.
func Build(srcPath, dstPath string, scheme Scheme) error {
	if len(scheme) == 0 {
		return errors.New("empty tiling scheme")
	}

	header := &Header{
		Version:    FormatVersion,
		LevelCount: int32(len(scheme)),
		TileCount:  int32(scheme.TileCount()),
		LevelStart: scheme.LevelStartIndexes(),
		Tiles:      make([]TileEntry, scheme.TileCount()),
	}
	header.StarRegionStart = uint64(header.Size())

	// Pass 1: count how many stars fall into each tile.
	counted, dropped, skipped, err := countPass(srcPath, scheme, header)
	if err != nil {
		return err
	}

	// Assign each tile a contiguous output range: exclusive prefix sum of
	// the per-tile counts in directory order.
	total := int32(0)
	for i := range header.Tiles {
		header.Tiles[i].FilePosition = total
		total += header.Tiles[i].StarCount
	}

	log.Infof("building star catalogue %v: %d stars in %d tiles (%d too faint, %d lines skipped)",
		dstPath, counted, header.TileCount, dropped, skipped)

	tmp, err := os.CreateTemp(filepath.Dir(dstPath), filepath.Base(dstPath)+".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "create temporary catalogue in %v", filepath.Dir(dstPath))
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmp != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err := placePass(srcPath, tmpPath, tmp, scheme, header); err != nil {
		return err
	}

	if err := tmp.Close(); err != nil {
		tmp = nil
		_ = os.Remove(tmpPath)
		return errors.Wrapf(err, "close %v", tmpPath)
	}
	tmp = nil
	if err := os.Rename(tmpPath, dstPath); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrapf(err, "rename %v to %v", tmpPath, dstPath)
	}
	return nil
}

// countPass streams the source once and fills in the per-tile star counts.
func countPass(srcPath string, scheme Scheme, header *Header) (counted, dropped, skipped int, err error) {
	src, err := openSource(srcPath)
	if err != nil {
		return 0, 0, 0, err
	}
	defer func() {
		_ = src.Close()
	}()

	for {
		line, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, 0, 0, err
		}
		sd, err := parseStarLine(line)
		if err != nil {
			skipped++
			continue
		}
		tile := scheme.OwningTile(sd.RA, sd.Dec, sd.Mag, header.LevelStart)
		if tile < 0 {
			dropped++
			continue
		}
		header.Tiles[tile].StarCount++
		counted++
	}
	return counted, dropped, skipped, nil
}

// placePass streams the source a second time and writes each record to its
// final offset. The header is written up front and rewritten, identically,
// once all records are in place.
func placePass(srcPath, dstPath string, out *os.File, scheme Scheme, header *Header) error {
	if _, err := header.WriteTo(out); err != nil {
		return errors.Wrapf(err, "write header of %v", dstPath)
	}

	src, err := openSource(srcPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = src.Close()
	}()

	written := make([]int32, len(header.Tiles))
	buf := make([]byte, RecordSize)
	for {
		line, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		sd, err := parseStarLine(line)
		if err != nil {
			continue
		}
		tile := scheme.OwningTile(sd.RA, sd.Dec, sd.Mag, header.LevelStart)
		if tile < 0 {
			continue
		}
		if written[tile] >= header.Tiles[tile].StarCount {
			return errors.Errorf("source catalogue %v changed between passes (tile %d overflow)", srcPath, tile)
		}

		offset := header.tileByteOffset(tile) + int64(written[tile])*RecordSize
		sd.encode(buf)
		if _, err := out.WriteAt(buf, offset); err != nil {
			return errors.Wrapf(err, "write star record to %v", dstPath)
		}
		written[tile]++
	}

	for i := range written {
		if written[i] != header.Tiles[i].StarCount {
			return errors.Errorf("source catalogue %v changed between passes (tile %d short)", srcPath, i)
		}
	}

	// Cosmetic rewrite: the passes never change header values.
	if _, err := out.Seek(0, io.SeekStart); err != nil {
		return errors.Wrapf(err, "seek in %v", dstPath)
	}
	if _, err := header.WriteTo(out); err != nil {
		return errors.Wrapf(err, "rewrite header of %v", dstPath)
	}
	return nil
}
