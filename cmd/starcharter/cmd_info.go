package main

import (
	"fmt"
	"io"
	"os"

	"github.com/minio/sha256-simd"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/starcharter/starcharter/internal/catalogue"
)

var cmdInfo = &cobra.Command{
	Use:   "catalogue-info [flags]",
	Short: "Print statistics about a binary star catalogue",
	Long: `
The "catalogue-info" command prints the header of a binary star catalogue,
per-level tile statistics, and a SHA-256 fingerprint of the file. Two
builds from the same text catalogue produce the same fingerprint.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunInfo(infoOptions.Catalogue)
	},
}

// InfoOptions bundles all options for the catalogue-info command.
type InfoOptions struct {
	Catalogue string
}

var infoOptions InfoOptions

func init() {
	cmdRoot.AddCommand(cmdInfo)

	f := cmdInfo.Flags()
	f.StringVar(&infoOptions.Catalogue, "catalogue", "", "binary catalogue to inspect")
	_ = cmdInfo.MarkFlagRequired("catalogue")
}

func RunInfo(path string) error {
	cat, err := catalogue.Open(path, catalogue.DefaultScheme)
	if err != nil {
		return err
	}
	defer func() {
		_ = cat.Close()
	}()

	scheme := cat.Scheme()
	fmt.Printf("catalogue:   %s\n", cat.Path())
	fmt.Printf("version:     %d\n", catalogue.FormatVersion)
	fmt.Printf("levels:      %d\n", len(scheme))
	fmt.Printf("tiles:       %d\n", scheme.TileCount())
	fmt.Printf("stars:       %d\n", cat.TotalStars())

	for level, lev := range scheme {
		stars, occupied := 0, 0
		for decIndex := 0; decIndex < lev.DecBins; decIndex++ {
			for raIndex := 0; raIndex < lev.RABins; raIndex++ {
				entry := cat.TileEntry(catalogue.TileID{Level: level, RAIndex: raIndex, DecIndex: decIndex})
				stars += int(entry.StarCount)
				if entry.StarCount > 0 {
					occupied++
				}
			}
		}
		fmt.Printf("level %d:     mag <= %-5.1f %4dx%-4d tiles, %d occupied, %d stars\n",
			level, lev.FaintestMag, lev.RABins, lev.DecBins, occupied, stars)
	}

	sum, err := fileSHA256(path)
	if err != nil {
		return err
	}
	fmt.Printf("sha256:      %x\n", sum)
	return nil
}

func fileSHA256(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %v", path)
	}
	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, errors.Wrapf(err, "read %v", path)
	}
	return h.Sum(nil), nil
}
