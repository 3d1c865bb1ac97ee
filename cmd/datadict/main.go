package main

import (
	"os"

	"github.com/adeccscholar/adecc-DataDictionary-sub000/internal/cli/commands"
)

// Version information - set at build time via -ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	commands.Version = Version
	commands.GitCommit = GitCommit
	commands.BuildDate = BuildDate

	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
