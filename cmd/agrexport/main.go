package main

import (
	"fmt"
	"os"

	"github.com/mgijax/agrexport/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cmd.Diagnostic(err))
		os.Exit(1)
	}
}
