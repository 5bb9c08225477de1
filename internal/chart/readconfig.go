package chart

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/starcharter/starcharter/internal/projection"
)

// maxInclusionDepth bounds INCLUDE nesting in configuration files.
const maxInclusionDepth = 4

// ReadConfigFile parses a chart configuration file and returns one Config
// per CHART block. Settings in a DEFAULTS block apply to every subsequent
// chart; lines starting with '#' are comments; INCLUDE pulls in another
// file.
func ReadConfigFile(path string) ([]Config, error) {
	p := &configParser{defaults: DefaultConfig()}
	if err := p.readFile(path, 0); err != nil {
		return nil, err
	}
	p.flushChart()
	return p.charts, nil
}

type configParser struct {
	defaults Config
	current  *Config
	charts   []Config
}

// flushChart closes the CHART block being read, if any.
func (p *configParser) flushChart() {
	if p.current != nil {
		p.charts = append(p.charts, *p.current)
		p.current = nil
	}
}

// destination returns the Config settings are currently being read into.
func (p *configParser) destination() *Config {
	if p.current != nil {
		return p.current
	}
	return &p.defaults
}

func (p *configParser) readFile(path string, depth int) error {
	if depth > maxInclusionDepth {
		return errors.Errorf("%v: INCLUDE nested more than %d levels deep", path, maxInclusionDepth)
	}
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open configuration file %v", path)
	}
	defer func() {
		_ = f.Close()
	}()

	sc := bufio.NewScanner(f)
	lineNumber := 0
	for sc.Scan() {
		lineNumber++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := p.processLine(line, path, depth); err != nil {
			return errors.Wrapf(err, "%v:%d", path, lineNumber)
		}
	}
	if err := sc.Err(); err != nil {
		return errors.Wrapf(err, "read configuration file %v", path)
	}
	return nil
}

func (p *configParser) processLine(line, path string, depth int) error {
	if rest, ok := strings.CutPrefix(line, "INCLUDE"); ok {
		included := strings.TrimSpace(rest)
		if !filepath.IsAbs(included) {
			included = filepath.Join(filepath.Dir(path), included)
		}
		return p.readFile(included, depth+1)
	}
	if line == "DEFAULTS" {
		p.flushChart()
		return nil
	}
	if line == "CHART" {
		p.flushChart()
		c := p.defaults
		p.current = &c
		return nil
	}

	key, value, found := strings.Cut(line, "=")
	if !found {
		return errors.Errorf("expected key=value, got %q", line)
	}
	return p.applySetting(p.destination(), strings.TrimSpace(key), strings.TrimSpace(value))
}

func (p *configParser) applySetting(c *Config, key, value string) error {
	num := func() (float64, error) {
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, errors.Errorf("setting %q needs a numeric value, got %q", key, value)
		}
		return v, nil
	}
	flag := func() (bool, error) {
		v, err := num()
		return v != 0, err
	}

	var err error
	switch key {
	case "ra_central":
		c.RA0, err = num()
		c.Coords = projection.Equatorial
	case "dec_central":
		c.Dec0, err = num()
	case "galactic_l_central":
		c.RA0, err = num()
		c.Coords = projection.Galactic
	case "galactic_b_central":
		c.Dec0, err = num()
	case "position_angle":
		c.PositionAngle, err = num()
	case "angular_width":
		c.AngularWidth, err = num()
	case "width":
		c.Width, err = num()
	case "aspect":
		c.Aspect, err = num()
	case "projection":
		switch value {
		case "gnomonic":
			c.Projection = projection.Gnomonic
		case "stereographic":
			c.Projection = projection.Stereographic
		case "flat":
			c.Projection = projection.Flat
		case "peters":
			c.Projection = projection.Peters
		case "sphere", "spherical":
			c.Projection = projection.Spherical
		case "alt_az":
			c.Projection = projection.AltAz
		default:
			return errors.Errorf("unknown projection %q", value)
		}
	case "coords":
		switch value {
		case "ra_dec":
			c.Coords = projection.Equatorial
		case "galactic":
			c.Coords = projection.Galactic
		default:
			return errors.Errorf("unknown coordinate system %q", value)
		}
	case "plot_stars":
		c.PlotStars, err = flag()
	case "mag_min":
		c.MagMin, err = num()
	case "mag_max":
		c.MagMax, err = num()
	case "mag_step":
		c.MagStep, err = num()
	case "mag_alpha":
		c.MagAlpha, err = num()
	case "mag_size_norm":
		c.MagSizeNorm, err = num()
	case "maximum_star_count":
		var v float64
		v, err = num()
		c.MaximumStarCount = int(v)
	case "minimum_star_count":
		var v float64
		v, err = num()
		c.MinimumStarCount = int(v)
	case "maximum_star_label_count":
		var v float64
		v, err = num()
		c.MaximumStarLabelCount = int(v)
	case "star_names":
		c.StarNames, err = flag()
	case "star_bayer_labels":
		c.StarBayerLabels, err = flag()
	case "star_flamsteed_labels":
		c.StarFlamsteedLabels, err = flag()
	case "star_variable_labels":
		c.StarVariableLabels, err = flag()
	case "star_mag_labels":
		c.StarMagLabels, err = flag()
	case "star_catalogue_numbers":
		c.StarCatalogueNumbers, err = flag()
	case "star_allow_multiple_labels":
		c.AllowMultipleLabels, err = flag()
	case "star_catalogue":
		switch value {
		case "hipparcos":
			c.StarCatalogue = CatalogueHIP
		case "ybsc":
			c.StarCatalogue = CatalogueHR
		case "hd":
			c.StarCatalogue = CatalogueHD
		default:
			return errors.Errorf("unknown star catalogue %q", value)
		}
	case "star_label_mag_min":
		c.StarLabelMagMin, err = num()
	case "star_catalogue_text":
		c.StarCatalogueText = value
	case "star_catalogue_binary":
		c.StarCatalogueBinary = value
	case "title":
		c.Title = value
	case "output_filename":
		c.OutputFilename = value
	default:
		return errors.Errorf("unknown setting %q", key)
	}
	return err
}
