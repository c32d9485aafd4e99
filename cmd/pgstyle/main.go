// Package main provides the pgstyle command-line tool.
package main

import (
	"os"

	"github.com/pgstyle/pgstyle/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
