// Package render drives one star chart from configuration to finished
// vector graphics: it auto-tunes the magnitude limits, streams the selected
// stars from the catalogue, and hands discs and labels to the canvas.
package render

import (
	log "github.com/sirupsen/logrus"

	"github.com/starcharter/starcharter/internal/canvas"
	"github.com/starcharter/starcharter/internal/catalogue"
	"github.com/starcharter/starcharter/internal/chart"
	"github.com/starcharter/starcharter/internal/labels"
)

const (
	dpi           = 72.0    // page units are points
	cmToPt        = 72.0 / 2.54
	labelFontSize = 9.0 // points, before page scaling
	titleFontSize = 14.0
)

// pageMapper converts plane coordinates into page coordinates (points,
// origin top left).
type pageMapper struct {
	fov           *catalogue.FieldOfView
	width, height float64 // points
}

func newPageMapper(cfg *chart.Config, fov *catalogue.FieldOfView) *pageMapper {
	w := cfg.Width * cmToPt
	return &pageMapper{fov: fov, width: w, height: w * cfg.Aspect}
}

func (p *pageMapper) toPage(x, y float64) (px, py float64) {
	px = (x - p.fov.XMin) / (p.fov.XMax - p.fov.XMin) * p.width
	py = (p.fov.YMax - y) / (p.fov.YMax - p.fov.YMin) * p.height
	return px, py
}

// scale normalises font sizes against the default page width.
func (p *pageMapper) scale() float64 {
	return p.width / (16.5 * cmToPt)
}

// Chart renders one chart to an SVG file named after the configured output
// filename. Each call opens its own catalogue handle, so independent charts
// may render concurrently.
func Chart(cfg *chart.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	_, fov := cfg.Geometry()

	cat, err := catalogue.OpenOrBuild(cfg.StarCatalogueText, cfg.StarCatalogueBinary, catalogue.DefaultScheme)
	if err != nil {
		return err
	}
	defer func() {
		_ = cat.Close()
	}()

	limits := catalogue.MagnitudeLimits{
		MagMax:  cfg.MagMax,
		MagMin:  cfg.MagMin,
		MagStep: cfg.MagStep,
	}
	if cfg.PlotStars {
		limits, err = cat.TuneMagnitudeLimits(fov, limits, catalogue.BudgetOptions{
			MaxStars: cfg.MaximumStarCount,
			MinStars: cfg.MinimumStarCount,
		})
		if err != nil {
			return err
		}
		log.Debugf("chart %v: magnitude range %.2f to %.2f", cfg.OutputFilename, limits.MagMax, limits.MagMin)
	}

	page := newPageMapper(cfg, fov)
	cv, err := canvas.NewSVG(cfg.OutputFilename+".svg", page.width, page.height)
	if err != nil {
		return err
	}

	eng := labels.NewEngine()

	starCount := 0
	if cfg.PlotStars {
		starCount, err = drawStars(cfg, cat, fov, limits, page, cv, eng)
		if err != nil {
			_ = cv.Close()
			return err
		}
	}

	for _, p := range eng.Place() {
		cv.Text(p.X, p.Y+p.FontSize/3, p.FontSize, p.Anchor, p.Text, p.Colour)
	}

	if cfg.Title != "" {
		cv.Text(page.width/2, titleFontSize*1.5, titleFontSize*page.scale(),
			canvas.AnchorMiddle, cfg.Title, canvas.Black)
	}

	if err := cv.Close(); err != nil {
		return err
	}

	log.Infof("rendered chart %v: %d stars", cfg.OutputFilename, starCount)
	return nil
}
