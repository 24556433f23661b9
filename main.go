package main

import (
	"os"

	"github.com/firefly-engineering/profilectl/cmd"
	"github.com/firefly-engineering/profilectl/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
