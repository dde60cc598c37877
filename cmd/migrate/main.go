// Command migrate runs goose commands against the configured database.
//
//	migrate [--env-file path] [up|down|status|redo|reset]
package main

import (
	"context"
	"fmt"
	"os"

	"farmdesk/cmd"
	"farmdesk/internal/adapters/out/postgres"

	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flagSet := pflag.NewFlagSet("migrate", pflag.ContinueOnError)
	envFile := flagSet.String("env-file", ".env", "path to the dotenv file")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		return err
	}

	command := "up"
	switch args := flagSet.Args(); len(args) {
	case 0:
	case 1:
		command = args[0]
	default:
		return fmt.Errorf("unexpected arguments: %v", args[1:])
	}

	var envArgs []string
	if flagSet.Changed("env-file") {
		envArgs = []string{"--env-file", *envFile}
	}

	config, err := cmd.LoadConfig("migrate", envArgs)
	if err != nil {
		return err
	}

	return postgres.MigrateDSN(context.Background(), config.DSN(), command)
}
