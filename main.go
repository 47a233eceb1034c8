// Package main is the entry point for the anipahe application.
package main

import (
	"github.com/anisan-cli/anipahe/cmd"
	"github.com/anisan-cli/anipahe/config"
	"github.com/anisan-cli/anipahe/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
