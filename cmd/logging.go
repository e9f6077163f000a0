package cmd

import (
	"github.com/gard-n/redner/log"
	"github.com/urfave/cli"
)

var logger = log.New("redner")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}
	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
