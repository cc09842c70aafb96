package main

import (
	"os"

	"github.com/schoolboyqueue/settingstore/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
