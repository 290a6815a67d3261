package main

import (
	"os"

	"auction-storefront/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
