package visualizer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// ImageEditor is the external provider capability: given an image, an
// optional mask and a text prompt, return a freshly generated image. The
// output resolution is not guaranteed to match the input.
type ImageEditor interface {
	EditImage(ctx context.Context, img, mask []byte, prompt string) ([]byte, error)
}

type Options struct {
	Editor  ImageEditor
	WorkDir string
	Logger  *slog.Logger
}

// Orchestrator runs the two-pass edit flow: provider mask generation,
// mask binarization, provider edit, geometry restoration. Sequential,
// no retries; any failure aborts the whole request.
type Orchestrator struct {
	editor  ImageEditor
	workDir string
	logger  *slog.Logger
}

func New(opts Options) *Orchestrator {
	workDir := opts.WorkDir
	if workDir == "" {
		workDir = os.TempDir()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Orchestrator{
		editor:  opts.Editor,
		workDir: workDir,
		logger:  logger,
	}
}

// Run edits the image at imagePath according to payload and returns the
// final JPEG bytes at the source image's original resolution. The mask
// artifact is written under a request-unique name and removed before Run
// returns, on every exit path.
func (o *Orchestrator) Run(ctx context.Context, imagePath string, payload EditPayload) ([]byte, error) {
	src, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("load image: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	width, height := cfg.Width, cfg.Height

	rawMask, err := o.editor.EditImage(ctx, src, nil, BuildMaskPrompt(payload))
	if err != nil {
		return nil, fmt.Errorf("generate mask: %w", err)
	}

	mask, err := BinarizeMask(rawMask, width, height)
	if err != nil {
		return nil, err
	}

	maskPath := filepath.Join(o.workDir, fmt.Sprintf("mask_%s.png", uuid.NewString()))
	if err := os.WriteFile(maskPath, mask, 0o644); err != nil {
		return nil, fmt.Errorf("write mask: %w", err)
	}
	defer os.Remove(maskPath)
	o.logger.Info("mask generated", "path", maskPath, "width", width, "height", height)

	rawEdited, err := o.editor.EditImage(ctx, src, mask, BuildEditPrompt(payload))
	if err != nil {
		return nil, fmt.Errorf("edit image: %w", err)
	}

	edited, err := imaging.Decode(bytes.NewReader(rawEdited))
	if err != nil {
		return nil, fmt.Errorf("decode edited image: %w", err)
	}

	// The provider's native output resolution need not match the input;
	// restore the original geometry with a smooth filter.
	final := imaging.Resize(edited, width, height, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, final, imaging.JPEG, imaging.JPEGQuality(95)); err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return buf.Bytes(), nil
}
