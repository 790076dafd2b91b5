// openai.go implements the cloud image-edit pipeline candidate. It is
// tried after the native FLUX pipeline and gives the backend a usable
// generation mode on machines without a CUDA build, at the cost of
// determinism: the API accepts no seed, steps or guidance parameters, so
// those are withheld by capability negotiation rather than silently
// dropped server-side.
package engine

import (
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/cskillzmartin/genmoji/core"
	"github.com/cskillzmartin/genmoji/imaging"
)

// Environment configuration for the cloud pipeline.
const (
	openAIKeyEnv   = "OPENAI_API_KEY"
	openAIModelEnv = "GENMOJI_OPENAI_IMAGE_MODEL"

	defaultOpenAIModel = "gpt-image-1"
)

type openaiPipeline struct {
	client *openai.Client
	model  string
}

func newOpenAIPipeline(cfg Config) (Pipeline, error) {
	key := os.Getenv(openAIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("%w: %s not set, cloud pipeline unavailable",
			ErrPipelineInit, openAIKeyEnv)
	}

	return &openaiPipeline{
		client: openai.NewClient(key),
		model:  core.GetEnvOrDefault(openAIModelEnv, defaultOpenAIModel),
	}, nil
}

func (p *openaiPipeline) Mode() string { return ModeOpenAIEdit }

func (p *openaiPipeline) SupportedParams() ParamSet {
	return NewParamSet(ParamPrompt, ParamImage)
}

func (p *openaiPipeline) ReferenceList() bool { return false }

// Run submits the conditioning image and prompt to the image edit
// endpoint and decodes the base64 PNG response.
func (p *openaiPipeline) Run(ctx context.Context, in PipelineInput) (image.Image, error) {
	src := in.Image
	if src == nil && len(in.ImageList) > 0 {
		src = in.ImageList[0]
	}
	if src == nil {
		return nil, fmt.Errorf("%w: no conditioning image", ErrInvalidParams)
	}

	// The SDK takes the edit source as *os.File; stage the conditioning
	// image in a temp file for the call.
	tmp, err := stageTempPNG(src)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	resp, err := p.client.CreateEditImage(ctx, openai.ImageEditRequest{
		Image:          tmp,
		Prompt:         in.Prompt,
		Model:          p.model,
		N:              1,
		Size:           editSizeFor(src),
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: image edit call: %v", ErrGenerationFailed, err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("%w: empty response from image edit API", ErrGenerationFailed)
	}

	raw, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding response payload: %v", ErrGenerationFailed, err)
	}

	img, err := imaging.DecodePNG(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return img, nil
}

func (p *openaiPipeline) Close() error { return nil }

// stageTempPNG writes an image to a temp PNG file opened for reading.
func stageTempPNG(img image.Image) (*os.File, error) {
	f, err := os.CreateTemp("", "genmoji-edit-*.png")
	if err != nil {
		return nil, fmt.Errorf("%w: temp file: %v", ErrGenerationFailed, err)
	}
	if err := imaging.WritePNG(f, img); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, err
	}
	if _, err := f.Seek(0, 0); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("%w: rewinding temp file: %v", ErrGenerationFailed, err)
	}
	return f, nil
}

// editSizeFor maps the conditioning size onto the nearest size the edit
// endpoint accepts.
func editSizeFor(img image.Image) string {
	w := img.Bounds().Dx()
	switch {
	case w <= 256:
		return openai.CreateImageSize256x256
	case w <= 512:
		return openai.CreateImageSize512x512
	default:
		return openai.CreateImageSize1024x1024
	}
}
