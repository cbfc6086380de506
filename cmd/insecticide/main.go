package main

import (
	"errors"
	"fmt"
	"os"

	"insecticide/internal/cli"
	"insecticide/internal/cli/commands"
	"insecticide/internal/suites/examples"
)

var version = "dev"

func main() {
	// Suites are registered once the logger exists
	env := cli.NewEnvironment(examples.Register)

	rootCmd := commands.NewRootCommand(version, env)

	err := rootCmd.Execute()
	env.Close()
	if err != nil && !errors.Is(err, commands.ErrTestsFailed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(commands.ExitCode(err))
}
