// Command bindgen generates multi-language bindings from one API
// description.
package main

import (
	"os"

	"github.com/roach88/bindgen/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
