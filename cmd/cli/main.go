package main

import (
	"fmt"
	"os"

	"github.com/de-tools/boxoffice-atlas/pkg/runtime/terminal"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional for the CLI; BOXOFFICE_* variables may come from the shell.
	_ = godotenv.Load()

	cli := terminal.NewCLI(terminal.Options{
		Output: os.Stdout,
		Logs:   os.Stderr,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
