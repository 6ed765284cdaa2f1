package cli

import (
	"context"

	"github.com/ayusman/cubescan/internal/capture"
	"github.com/ayusman/cubescan/internal/cube"
)

// noCapture stands in for the camera when the cube string is given on the
// command line.
type noCapture struct{}

func (noCapture) Run(context.Context) (cube.Reading, error) {
	return nil, capture.ErrCancelled
}
