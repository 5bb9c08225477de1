package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/starcharter/starcharter/internal/catalogue"
	"github.com/starcharter/starcharter/internal/chart"
	"github.com/starcharter/starcharter/internal/render"
)

var cmdRender = &cobra.Command{
	Use:   "render [flags]",
	Short: "Render the charts described by a configuration file",
	Long: `
The "render" command reads a chart configuration file and renders every
CHART block it defines. Charts are independent of one another and render
concurrently; each render opens its own catalogue handle.

EXIT STATUS
===========

Exit status is 0 if every chart rendered successfully.
Exit status is 1 if any chart failed.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunRender(renderOptions.Config, renderOptions.Jobs)
	},
}

// RenderOptions bundles all options for the render command.
type RenderOptions struct {
	Config string
	Jobs   int
}

var renderOptions RenderOptions

func init() {
	cmdRoot.AddCommand(cmdRender)

	f := cmdRender.Flags()
	f.StringVar(&renderOptions.Config, "config", "", "chart configuration file")
	f.IntVar(&renderOptions.Jobs, "jobs", 4, "render up to `n` charts concurrently")
	_ = cmdRender.MarkFlagRequired("config")
}

func RunRender(configPath string, jobs int) error {
	charts, err := chart.ReadConfigFile(configPath)
	if err != nil {
		return err
	}
	if len(charts) == 0 {
		log.Warnf("configuration file %v defines no charts", configPath)
		return nil
	}

	// A missing or stale binary catalogue is rebuilt on first open.
	// Rebuild it up front, once, so that the concurrent renders below only
	// ever open the finished file.
	if err := ensureCatalogue(&charts[0]); err != nil {
		return err
	}

	wg := &errgroup.Group{}
	wg.SetLimit(jobs)
	for i := range charts {
		cfg := charts[i]
		wg.Go(func() error {
			return render.Chart(&cfg)
		})
	}
	return wg.Wait()
}

// ensureCatalogue performs the transparent rebuild-and-retry before any
// concurrent readers start. Construction and consumption of the binary
// catalogue are mutually exclusive phases.
func ensureCatalogue(cfg *chart.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cat, err := catalogue.OpenOrBuild(cfg.StarCatalogueText, cfg.StarCatalogueBinary, catalogue.DefaultScheme)
	if err != nil {
		return err
	}
	return cat.Close()
}
