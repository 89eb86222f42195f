package main

import (
	"fmt"
	"os"

	"github.com/sandeepkv93/tasklist/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		fmt.Fprintf(os.Stderr, "tasklist: %v\n", err)
		os.Exit(1)
	}
}
