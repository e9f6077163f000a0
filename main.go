package main

import (
	"os"

	"github.com/gard-n/redner/cmd"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "redner"
	app.Usage = "edge-sampling engine for differentiable rendering"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "demo",
			Usage: "sample primary and secondary edges of a procedural mesh and report hit rates",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "samples",
					Value: 1024,
					Usage: "number of samples to draw per integral",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "worker pool size (0 = GOMAXPROCS)",
				},
			},
			Action: cmd.Demo,
		},
	}

	app.Run(os.Args)
}
