// imagefilter applies fixed image filters to image files.
package main

import (
	"os"

	"github.com/gogpu/imagefilter/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
