package render

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/starcharter/starcharter/internal/canvas"
	"github.com/starcharter/starcharter/internal/catalogue"
	"github.com/starcharter/starcharter/internal/chart"
	"github.com/starcharter/starcharter/internal/labels"
)

// StarRadius calculates the radius of a star's disc on the page, in points,
// logarithmically scaled as a function of brightness.
func StarRadius(cfg *chart.Config, mag float64, magMax float64) float64 {
	steps := (magMax - mag) / cfg.MagStep
	if steps > 0 {
		// Stars brighter than the top of the scale all get the same size.
		steps = 0
	}
	scaled := cfg.MagSizeNorm * 18.64 * math.Pow(cfg.MagAlpha, steps)

	const pt = 1.0 / 72 // inches
	inches := 0.75 * 3 * pt * scaled * 0.0014552083 * 60
	return inches * dpi
}

// stripToLetters drops everything but ASCII letters, for comparing a star's
// proper name against its Bayer designation regardless of accents and
// digits.
func stripToLetters(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < unicode.MaxASCII && unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// hasName reports whether a fixed-width name field holds a real value; the
// catalogue uses "-" as a placeholder.
func hasName(s string) bool {
	return s != "" && !strings.HasPrefix(s, "-")
}

// starLabels collects the label strings to offer for one star, most
// important first.
func starLabels(cfg *chart.Config, sd *catalogue.StarRecord) []string {
	var out []string
	if cfg.StarNames && hasName(sd.Name) &&
		stripToLetters(sd.Name) != stripToLetters(sd.BayerFull) {
		out = append(out, strings.ReplaceAll(sd.Name, "_", " "))
	}
	if cfg.StarBayerLabels && hasName(sd.Bayer) {
		out = append(out, sd.Bayer)
	}
	if cfg.StarFlamsteedLabels && hasName(sd.Flamsteed) {
		out = append(out, sd.Flamsteed)
	}
	if cfg.StarVariableLabels && hasName(sd.Variable) {
		out = append(out, strings.ReplaceAll(sd.Variable, "_", " "))
	}
	if cfg.StarCatalogueNumbers {
		switch {
		case cfg.StarCatalogue == chart.CatalogueHIP && sd.HIP > 0:
			out = append(out, fmt.Sprintf("HIP%d", sd.HIP))
		case cfg.StarCatalogue == chart.CatalogueHR && sd.HR > 0:
			out = append(out, fmt.Sprintf("HR%d", sd.HR))
		case cfg.StarCatalogue == chart.CatalogueHD && sd.HD > 0:
			out = append(out, fmt.Sprintf("HD%d", sd.HD))
		}
	}
	if cfg.StarMagLabels {
		out = append(out, fmt.Sprintf("%.1f", sd.Mag))
	}
	if !cfg.AllowMultipleLabels && len(out) > 1 {
		out = out[:1]
	}
	return out
}

// drawStars streams the selected stars onto the canvas and queues their
// labels. Returns the number of stars drawn.
func drawStars(cfg *chart.Config, cat *catalogue.Catalogue, fov *catalogue.FieldOfView,
	limits catalogue.MagnitudeLimits, page *pageMapper, cv canvas.Canvas, eng *labels.Engine) (int, error) {

	starCount := 0
	labelCount := 0
	err := cat.SelectStars(fov, limits.MagMin, func(vs catalogue.VisibleStar) error {
		radius := StarRadius(cfg, vs.Star.Mag, limits.MagMax)
		px, py := page.toPage(vs.X, vs.Y)
		cv.FilledCircle(px, py, radius, canvas.Black)
		starCount++

		// Keep text clear of the star disc.
		eng.AddExclusion(px-radius, py-radius, px+radius, py+radius)

		if vs.Star.Mag >= cfg.StarLabelMagMin || labelCount >= cfg.MaximumStarLabelCount {
			return nil
		}
		texts := starLabels(cfg, &vs.Star)
		if len(texts) == 0 {
			return nil
		}

		fontSize := labelFontSize * page.scale()
		offset := radius + 0.075*cmToPt
		for _, text := range texts {
			eng.Queue(labels.Label{
				Text:     text,
				FontSize: fontSize,
				Priority: vs.Star.Mag,
				Colour:   canvas.Black,
				Candidates: []labels.Candidate{
					{X: px + offset, Y: py, Anchor: canvas.AnchorStart},
					{X: px - offset, Y: py, Anchor: canvas.AnchorEnd},
					{X: px, Y: py - offset, Anchor: canvas.AnchorMiddle},
					{X: px, Y: py + offset, Anchor: canvas.AnchorMiddle},
				},
			})
			labelCount++
		}
		return nil
	})
	return starCount, err
}
