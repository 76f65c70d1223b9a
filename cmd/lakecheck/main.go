package main

import (
	"fmt"
	"os"

	"github.com/lakecheck-io/lakecheck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
