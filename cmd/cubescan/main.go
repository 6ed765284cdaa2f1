// cubescan scans a Rubik's cube with a camera and prints its solution.
package main

import (
	"github.com/ayusman/cubescan/internal/cli"
)

func main() {
	cli.Execute()
}
