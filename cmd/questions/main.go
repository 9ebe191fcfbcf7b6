package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/gcbaptista/go-questions/internal/cli"
	qerrors "github.com/gcbaptista/go-questions/internal/errors"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, qerrors.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
