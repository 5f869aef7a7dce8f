package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/bodgit/mode13h"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newConverter(c *cli.Context) (*mode13h.Converter, func() error, error) {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	if c.String("db") == "" {
		return mode13h.New(nil, logger), func() error { return nil }, nil
	}

	db, err := mode13h.NewConversionDB(c.String("db"))
	if err != nil {
		return nil, nil, err
	}

	return mode13h.New(db, logger), db.Close, nil
}

func main() {
	app := cli.NewApp()

	app.Name = "mode13h"
	app.Usage = "Convert bitmaps to VGA mode 13h packed bitmaps"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "db",
			Usage: "path to conversion cache, disabled if empty",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "convert",
			Usage:       "Convert a bitmap to a packed bitmap",
			Description: "Only uncompressed 24 and 32 bit bitmaps are supported.",
			ArgsUsage:   "INPUT OUTPUT",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, closer, err := newConverter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closer()

				if err := m.ConvertFile(c.Args().Get(0), c.Args().Get(1)); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Convert every bitmap below a directory",
			Description: "Each FILE.bmp is converted to FILE.pbm in the same directory.",
			ArgsUsage:   "DIRECTORY",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "workers",
					Aliases: []string{"w"},
					Value:   4,
					Usage:   "number of concurrent conversions",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, closer, err := newConverter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closer()

				if err := m.Scan(c.Args().First(), c.Int("workers")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "preview",
			Usage:       "Render a packed bitmap as a regular image",
			Description: "The output format follows the extension: .png, .bmp, .gif, .jpg or .tif.",
			ArgsUsage:   "INPUT OUTPUT",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, closer, err := newConverter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closer()

				if err := m.Preview(c.Args().Get(0), c.Args().Get(1)); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "report",
			Usage:       "Report how well a bitmap maps to the VGA palette",
			Description: "",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, closer, err := newConverter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closer()

				b, err := ioutil.ReadFile(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				r, err := m.Report(b)
				if err != nil {
					return cli.NewExitError(fmt.Errorf("%s: %w", c.Args().First(), err), 1)
				}

				fmt.Printf("Dimensions:     %dx%d\n", r.Width, r.Height)
				fmt.Printf("Source colors:  %d\n", r.SourceColors)
				fmt.Printf("VGA colors:     %d\n", r.IndicesUsed)
				fmt.Printf("VGA error:      %.2f\n", r.VGAError)
				fmt.Printf("Adaptive error: %.2f\n", r.AdaptiveError)

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
