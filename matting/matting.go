// Package matting removes image backgrounds by driving the rembg CLI as
// a subprocess, piping PNG bytes over stdin/stdout. Sessions are
// validated handles for one model name and are created at most once per
// model per process via Cache.
package matting

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os/exec"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/cskillzmartin/genmoji/imaging"
)

// DefaultModel is the matting model used when settings do not name one.
const DefaultModel = "birefnet-general"

// rembgBinary is the subprocess name resolved from PATH.
const rembgBinary = "rembg"

var (
	// ErrRembgNotFound indicates the rembg executable is not installed.
	ErrRembgNotFound = errors.New("matting: rembg executable not found in PATH")

	// ErrSessionInit indicates a session could not be validated.
	ErrSessionInit = errors.New("matting: session initialization failed")

	// ErrMattingFailed indicates the subprocess ran but produced no
	// usable matte.
	ErrMattingFailed = errors.New("matting: background removal failed")
)

// Session is a validated handle for one matting model name. The first
// Remove call with a given model downloads its weights inside the rembg
// subprocess, so sessions are cached and reused for the process
// lifetime.
type Session struct {
	model  string
	binary string
}

// Model returns the model name this session was opened for.
func (s *Session) Model() string { return s.model }

// Remover computes an alpha matte for an opaque input image.
type Remover interface {
	// Remove returns the input with a computed alpha channel. The
	// subprocess is bounded by ctx.
	Remove(ctx context.Context, session *Session, img image.Image) (*image.NRGBA, error)
}

// Cache creates sessions lazily and returns the same handle for every
// subsequent request with the same model name.
type Cache struct {
	logger *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewCache returns an empty session cache.
func NewCache(logger *zap.Logger) *Cache {
	return &Cache{
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Session returns the cached session for model, creating and validating
// it on first use. An empty model name selects DefaultModel.
func (c *Cache) Session(model string) (*Session, error) {
	if model == "" {
		model = DefaultModel
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.sessions[model]; ok {
		return s, nil
	}

	binary, err := exec.LookPath(rembgBinary)
	if err != nil {
		return nil, fmt.Errorf("%w (install with: pip install rembg[cli])", ErrRembgNotFound)
	}

	s := &Session{model: model, binary: binary}
	c.sessions[model] = s
	c.logger.Info("created matting session",
		zap.String("model", model),
		zap.String("binary", binary),
	)
	return s, nil
}

// CLIRemover implements Remover over the rembg subprocess.
type CLIRemover struct {
	logger *zap.Logger
}

// NewCLIRemover returns a Remover backed by the rembg CLI.
func NewCLIRemover(logger *zap.Logger) *CLIRemover {
	return &CLIRemover{logger: logger}
}

// Remove pipes the image through `rembg i -m <model>` as PNG bytes.
// rembg reads stdin and writes stdout when no paths are given.
func (r *CLIRemover) Remove(ctx context.Context, session *Session, img image.Image) (*image.NRGBA, error) {
	if session == nil {
		return nil, fmt.Errorf("%w: nil session", ErrSessionInit)
	}

	input, err := imaging.EncodePNG(img)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding input: %v", ErrMattingFailed, err)
	}

	cmd := exec.CommandContext(ctx, session.binary, "i", "-m", session.model)
	cmd.Stdin = bytes.NewReader(input)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrMattingFailed, ctxErr)
		}
		return nil, fmt.Errorf("%w: %v: %s", ErrMattingFailed, err, firstLine(stderr.String()))
	}

	out, err := imaging.DecodePNG(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: decoding subprocess output: %v", ErrMattingFailed, err)
	}

	matte := imaging.ToNRGBA(out)
	r.logger.Debug("background removed",
		zap.String("model", session.model),
		zap.Float64("alpha_coverage", imaging.AlphaCoverage(matte)),
	)
	return matte, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
