//go:build flux && cgo

// Native FLUX.2-klein pipeline via CGo bindings to the flux.cpp runtime.
//
// Prerequisites:
//  1. flux.cpp compiled as a shared library (libflux.so/dylib/dll)
//  2. CGO_CFLAGS pointing at the header path
//  3. CGO_LDFLAGS linking the library
//
// Example:
//
//	CGO_CFLAGS="-I${FLUX_CPP_PATH}" \
//	CGO_LDFLAGS="-L${FLUX_CPP_PATH}/build -lflux" \
//	CGO_ENABLED=1 go build -tags flux

package engine

/*
#cgo CFLAGS: -I${SRCDIR}/../vendor/flux.cpp
#cgo LDFLAGS: -L${SRCDIR}/../vendor/flux.cpp/build -lflux

#include <stdlib.h>
#include <stdint.h>

// Placeholder type until the flux.cpp header is vendored. When the
// library is integrated, replace with:
//
// #include <flux.h>
//
// extern flux_ctx_t* flux_ctx_create(const char* model_path, int cpu_offload);
// extern void flux_ctx_free(flux_ctx_t* ctx);
// extern uint8_t* flux_img2img(flux_ctx_t* ctx, const char* prompt,
//                              const uint8_t* ref, int ref_w, int ref_h,
//                              int steps, float guidance, float strength,
//                              int64_t seed, int* out_w, int* out_h);
// extern int flux_cuda_available();
typedef void* flux_ctx_t;
*/
import "C"

import (
	"context"
	"fmt"
	"image"
	"strings"
	"sync"
	"unsafe"
)

// fluxPipeline wraps a flux.cpp context. It declares the full img2img
// parameter surface including native strength, and uses reference-list
// addressing (image latents concatenated with noise).
type fluxPipeline struct {
	mu     sync.Mutex
	cCtx   C.flux_ctx_t
	closed bool
}

func newFluxPipeline(cfg Config) (Pipeline, error) {
	if strings.HasPrefix(cfg.Device, "cuda") {
		// TODO(flux.cpp): replace with C.flux_cuda_available() once the
		// header is vendored.
		return nil, fmt.Errorf("%w: flux.cpp CUDA probe not yet wired", ErrCUDAUnavailable)
	}

	cModelPath := C.CString(cfg.ModelPath)
	defer C.free(unsafe.Pointer(cModelPath))

	// Library integration pending; constructing a context is not yet
	// possible, so this candidate reports init failure and the chain
	// falls through.
	return nil, fmt.Errorf("%w: flux.cpp bindings pending header integration", ErrPipelineInit)
}

func (p *fluxPipeline) Mode() string { return ModeFlux2Klein }

func (p *fluxPipeline) SupportedParams() ParamSet {
	return NewParamSet(ParamPrompt, ParamImage, ParamSteps, ParamGuidance, ParamGenerator, ParamStrength)
}

func (p *fluxPipeline) ReferenceList() bool { return true }

func (p *fluxPipeline) Run(ctx context.Context, in PipelineInput) (image.Image, error) {
	return nil, fmt.Errorf("%w: flux.cpp bindings pending header integration", ErrGenerationFailed)
}

func (p *fluxPipeline) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}
