package main

import (
	"errors"
	"os"

	"github.com/bft-labs/addrcheck/internal/cliconfig"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		if errors.Is(err, errRejected) {
			os.Exit(1)
		}
		log := cliconfig.BootstrapLogger()
		log.Error().Err(err).Msg("addrcheck")
		os.Exit(1)
	}
}
