package catalogue

import (
	"math"

	log "github.com/sirupsen/logrus"
)

// Absolute limits on magnitudes of stars in the input dataset.
const (
	CatalogueMagMax = -2.0 // brightest
	CatalogueMagMin = 14.0 // faintest
)

// MagnitudeLimits bounds the stars plotted on one chart. MagMax is the
// brightest magnitude the legend scale starts from; MagMin is the faintest
// magnitude selected for rendering.
type MagnitudeLimits struct {
	MagMax  float64
	MagMin  float64
	MagStep float64
}

// BudgetOptions configures the magnitude auto-tuning.
type BudgetOptions struct {
	// MaxStars caps the number of stars rendered; the faintest-magnitude
	// cutoff is pulled brighter until the viewport count fits.
	MaxStars int
	// MinStars pushes the cutoff fainter when the viewport is sparsely
	// populated.
	MinStars int
}

// TuneMagnitudeLimits builds a histogram of viewport-visible star counts in
// MagStep-wide magnitude bins and derives the faintest magnitude that keeps
// the rendered star count within opts.MaxStars. Only tiles passing the
// field-of-view test are read. The histogram is fully accumulated before
// the cutoff scan, so the result does not depend on tile read order. If the
// visible total never exceeds the budget, the configured MagMin stands.
//
// As a display-polish rule, empty bins at the bright end relax MagMax
// toward fainter values so the legend does not waste range on an empty
// interval.
func (c *Catalogue) TuneMagnitudeLimits(fov *FieldOfView, limits MagnitudeLimits, opts BudgetOptions) (MagnitudeLimits, error) {
	// Clamp requested limits to the catalogue's magnitude domain.
	limits.MagMin = clamp(limits.MagMin, CatalogueMagMax, CatalogueMagMin)
	limits.MagMax = clamp(limits.MagMax, CatalogueMagMax, CatalogueMagMin)

	histogramBins := int(math.Floor((CatalogueMagMin - CatalogueMagMax) / limits.MagStep))
	histogram := make([]int, histogramBins+1)
	included := 0

	for level := range c.scheme {
		if level > 0 && c.scheme[level-1].FaintestMag >= limits.MagMin && included >= opts.MinStars+10 {
			// Remaining levels hold only stars fainter than the current
			// selection floor, and the minimum population is already met.
			break
		}
		if included >= opts.MaxStars+10 {
			// The budget is already exhausted; fainter levels cannot
			// change the cutoff.
			break
		}

		for _, id := range fov.VisibleTiles(c.scheme, level) {
			records, err := c.ReadTile(id)
			if err != nil {
				return limits, err
			}
			for i := range records {
				x, y := fov.Proj.Project(records[i].RA, records[i].Dec)
				if !fov.InPlotArea(x, y) {
					continue
				}
				bin := int(math.Floor((records[i].Mag - CatalogueMagMax) / limits.MagStep))
				if bin < 0 {
					bin = 0
				}
				if bin > histogramBins {
					bin = histogramBins
				}
				histogram[bin]++
				included++
			}
		}
	}

	// Scan from the brightest bin downward, accumulating the running star
	// count, to find where the budget is exhausted.
	newMagMax := CatalogueMagMax
	total := 0
	for bin := 0; bin <= histogramBins; bin++ {
		binMag := CatalogueMagMax + float64(bin)*limits.MagStep
		total += histogram[bin]

		// Relax the bright end while it is nearly empty.
		if total < 4 {
			newMagMax = binMag + limits.MagStep
		}

		log.Debugf("stars brighter than mag %6.2f: %6d", binMag, total)

		if total < opts.MinStars && binMag > limits.MagMin {
			limits.MagMin = binMag
		}
		if total > opts.MaxStars && binMag < limits.MagMin {
			limits.MagMin = binMag
			log.Debugf("truncating stars to mag %6.2f", limits.MagMin)
			break
		}
	}

	limits.MagMax = math.Max(limits.MagMax, newMagMax)
	return limits, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
