// Command ppp converts an XLSForm into a human readable paper version.
package main

import (
	"os"

	"github.com/AbdelazizMoustafa10m/ppp/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
