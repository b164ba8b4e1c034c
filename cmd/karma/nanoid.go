package main

import (
	"fmt"

	"karma/internal/utils"

	"github.com/urfave/cli/v2"
)

var nanoidCommand = &cli.Command{
	Name:  "nanoid",
	Usage: "Generate ids for the seed directory",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"c"},
			Usage:   "Number of IDs to generate",
			Value:   1,
		},
		&cli.IntFlag{
			Name:    "size",
			Aliases: []string{"s"},
			Usage:   "Length of each ID",
			Value:   utils.IDSize,
		},
		&cli.StringFlag{
			Name:  "prefix",
			Usage: "Prepended to every ID",
		},
	},
	Action: func(c *cli.Context) error {
		if c.Int("size") < 1 {
			return fmt.Errorf("size must be at least 1")
		}

		for range c.Int("count") {
			fmt.Println(utils.PrefixedID(c.String("prefix"), c.Int("size")))
		}
		return nil
	},
}
