// Package main is the entry point for the ttt CLI.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/runoshun/ttt/internal/app"
	"github.com/runoshun/ttt/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}

func run() error {
	container, err := app.New(app.Options{DataFile: dataFileArg(os.Args[1:])})
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer container.Close()

	rootCmd := cli.NewRootCommand(container, version)
	return rootCmd.Execute()
}

// dataFileArg pre-scans the arguments for --data-file so the container
// can be built on the right path before the flag set is parsed.
func dataFileArg(args []string) string {
	for i, arg := range args {
		if arg == "--data-file" && i+1 < len(args) {
			return args[i+1]
		}
		if v, ok := strings.CutPrefix(arg, "--data-file="); ok {
			return v
		}
	}
	return ""
}
