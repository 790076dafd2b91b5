//go:build !flux || !cgo

// Stub constructor for the native FLUX.2-klein pipeline, used when the
// binary is built without the native runtime. The candidate chain records
// the returned error and falls through to the next pipeline; if nothing
// else loads, the engine enters fallback mode with this reason.
//
// Build with CGO_ENABLED=1 go build -tags flux for native generation.

package engine

import (
	"fmt"
	"strings"
)

func newFluxPipeline(cfg Config) (Pipeline, error) {
	if strings.HasPrefix(cfg.Device, "cuda") {
		return nil, fmt.Errorf("%w: device is set to cuda but this build has no CUDA "+
			"runtime linked; rebuild with CGO_ENABLED=1 -tags flux, or switch device "+
			"to cpu in settings", ErrCUDAUnavailable)
	}
	return nil, fmt.Errorf("%w: native FLUX runtime not linked in this build "+
		"(rebuild with CGO_ENABLED=1 -tags flux)", ErrPipelineInit)
}
