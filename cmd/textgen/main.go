package main

import (
	"os"

	"textgen/internal/cli"
)

func main() {
	os.Exit(cli.Main())
}
