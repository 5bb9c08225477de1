// Package chart holds the configuration describing one star chart and the
// parser for chart configuration files.
package chart

import (
	"math"

	"github.com/pkg/errors"

	"github.com/starcharter/starcharter/internal/catalogue"
	"github.com/starcharter/starcharter/internal/projection"
)

// StarCatalogueID selects which catalogue number is written next to stars.
type StarCatalogueID int

const (
	CatalogueHIP StarCatalogueID = iota // Hipparcos
	CatalogueHR                         // Yale Bright Star
	CatalogueHD                         // Henry Draper
)

// Config describes one chart to render. Angles are stored in the units the
// configuration file uses (RA in hours, declination and widths in degrees);
// Geometry converts them to radians.
type Config struct {
	// Pointing and projection.
	Projection    projection.Family
	Coords        projection.Coordinates
	RA0           float64 // hours (equatorial) or degrees (galactic longitude)
	Dec0          float64 // degrees
	PositionAngle float64 // degrees
	AngularWidth  float64 // degrees
	Aspect        float64 // height/width ratio

	// Star selection and sizing.
	PlotStars        bool
	MagMin           float64 // faintest magnitude to plot
	MagMax           float64 // brightest magnitude on the legend scale
	MagStep          float64
	MagAlpha         float64 // radius ratio between adjacent magnitude steps
	MagSizeNorm      float64
	MaximumStarCount int
	MinimumStarCount int

	// Star labelling.
	StarNames             bool
	StarBayerLabels       bool
	StarFlamsteedLabels   bool
	StarVariableLabels    bool
	StarMagLabels         bool
	StarCatalogueNumbers  bool
	StarCatalogue         StarCatalogueID
	StarLabelMagMin       float64
	MaximumStarLabelCount int
	AllowMultipleLabels   bool

	// Page.
	Width          float64 // cm
	Title          string
	OutputFilename string

	// Catalogue locations.
	StarCatalogueText   string // text source, optionally gzipped
	StarCatalogueBinary string // derived binary cache
}

// DefaultConfig returns the chart settings used when the configuration
// file does not override them.
func DefaultConfig() Config {
	return Config{
		Projection:    projection.Gnomonic,
		Coords:        projection.Equatorial,
		RA0:           0,
		Dec0:          0,
		PositionAngle: 0,
		AngularWidth:  25.0,
		Aspect:        math.Sqrt2,

		PlotStars:        true,
		MagMin:           6.0,
		MagMax:           0.0,
		MagStep:          0.5,
		MagAlpha:         1.1727932,
		MagSizeNorm:      0.4,
		MaximumStarCount: 1693,
		MinimumStarCount: 0,

		StarNames:             true,
		StarCatalogue:         CatalogueHIP,
		StarLabelMagMin:       9999,
		MaximumStarLabelCount: 1000,

		Width:          16.5,
		OutputFilename: "chart",
	}
}

// Validate rejects configurations that cannot be rendered.
func (c *Config) Validate() error {
	if c.AngularWidth <= 0 || c.AngularWidth > 360 {
		return errors.Errorf("angular_width %v out of range", c.AngularWidth)
	}
	if c.Aspect <= 0 {
		return errors.Errorf("aspect %v out of range", c.Aspect)
	}
	if c.MagStep <= 0 {
		return errors.Errorf("mag_step %v out of range", c.MagStep)
	}
	if c.MaximumStarCount < 1 {
		return errors.Errorf("maximum_star_count %v out of range", c.MaximumStarCount)
	}
	if c.StarCatalogueText == "" && c.StarCatalogueBinary == "" {
		return errors.New("no star catalogue configured")
	}
	return nil
}

// Geometry derives the projection and field of view for this chart. The
// chart centre is converted from configuration units to radians here, once.
func (c *Config) Geometry() (*projection.Projection, *catalogue.FieldOfView) {
	ra0 := c.RA0 * math.Pi / 12 // RA in hours
	if c.Coords == projection.Galactic {
		ra0 = c.RA0 * math.Pi / 180 // galactic longitude in degrees
	}
	dec0 := c.Dec0 * math.Pi / 180
	pa := c.PositionAngle * math.Pi / 180
	width := c.AngularWidth * math.Pi / 180

	proj := projection.New(c.Projection, c.Coords, ra0, dec0, pa, width)
	wlin := proj.PlaneWidth()

	fov := &catalogue.FieldOfView{
		RA0:        ra0,
		Dec0:       dec0,
		PlaneWidth: wlin,
		Aspect:     c.Aspect,
		XMin:       -wlin / 2,
		XMax:       wlin / 2,
		YMin:       -wlin / 2 * c.Aspect,
		YMax:       wlin / 2 * c.Aspect,
		Proj:       proj,
	}
	return proj, fov
}
