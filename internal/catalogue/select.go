package catalogue

// VisibleStar is one star selected for rendering, together with its
// projected position on the chart plane.
type VisibleStar struct {
	Star StarRecord
	X, Y float64
}

// SelectStars streams the stars to draw: for every tile passing the
// field-of-view test in a level not entirely fainter than the cutoff, it
// reads the tile's records, projects each star, and yields those whose
// projected position is finite and inside the plot bounds and whose
// magnitude does not exceed faintestMag. The walk is a single forward pass
// over tile reads; within a tile, records are yielded in their catalogue
// order. Returning a non-nil error from fn aborts the walk.
func (c *Catalogue) SelectStars(fov *FieldOfView, faintestMag float64, fn func(VisibleStar) error) error {
	for level := range c.scheme {
		if level > 0 && c.scheme[level-1].FaintestMag >= faintestMag {
			// Every star in this level and beyond is fainter than the
			// cutoff.
			break
		}
		for _, id := range fov.VisibleTiles(c.scheme, level) {
			records, err := c.ReadTile(id)
			if err != nil {
				return err
			}
			for i := range records {
				if records[i].Mag > faintestMag {
					continue
				}
				x, y := fov.Proj.Project(records[i].RA, records[i].Dec)
				if !fov.InPlotArea(x, y) {
					continue
				}
				if err := fn(VisibleStar{Star: records[i], X: x, Y: y}); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
