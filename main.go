// Package main is the entry point for glossa.
package main

import (
	"github.com/glossa-cli/glossa/cmd"
	"github.com/glossa-cli/glossa/config"
	"github.com/glossa-cli/glossa/internal/cache"
	"github.com/glossa-cli/glossa/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Expired transcripts are pruned in the background.
	go cache.CollectGarbage()

	cmd.Execute()
}
