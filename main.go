// Command mediaspawn plays plans that attach media players to containers along a timeline.
package main

import (
	"github.com/mediaspawn/mediaspawn/cmd"
	"github.com/mediaspawn/mediaspawn/config"
	"github.com/mediaspawn/mediaspawn/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
