package main

import (
	"fmt"
	"os"

	"rzc-go/packages/compiler/src/config"
	"rzc-go/packages/compiler/src/logger"
	"rzc-go/packages/compiler/src/lowering"
)

func usage() {
	fmt.Println(`rzc-go - component template lowering
Usage: rzc-go <command> [args]

Commands:
  lower [flags] <document>...   Lower parsed documents and print them as JSON
  phases                        List the lowering phases in order
  help                          Show help

Flags for lower:
  -catalog <file>   Descriptor catalog (YAML)
  -config <file>    Project file (YAML)
  -metrics <file>   Write lowering metrics in the Prometheus text format
  -env <file>       Load environment variables from a dotenv file (default .env)`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	switch cmd {
	case "help":
		usage()
	case "phases":
		for _, name := range lowering.Phases() {
			fmt.Println(name)
		}
	case "lower":
		opts, err := parseLowerOptions(os.Args[2:])
		if err != nil {
			fmt.Fprintf(os.Stderr, "lower: %v\n", err)
			os.Exit(2)
		}
		if err := config.LoadEnvFiles(opts.envFile); err != nil {
			fmt.Fprintf(os.Stderr, "lower: %v\n", err)
			os.Exit(1)
		}
		logger.Setup(config.AppEnv())
		hasErrors, err := lower(opts, os.Stdout)
		if err != nil {
			logger.Log.Error("lowering failed", "error", err)
			os.Exit(1)
		}
		if hasErrors {
			os.Exit(3)
		}
	default:
		usage()
		os.Exit(1)
	}
}
