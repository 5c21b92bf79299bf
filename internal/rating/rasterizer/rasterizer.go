package rasterizer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/resumerater/resumerater-backend/internal/rating/domain"
	"github.com/resumerater/resumerater-backend/pkg/logger"
)

// DefaultDPI is the resolution pages are rendered at unless configured otherwise.
const DefaultDPI = 300

var (
	pdfMagic = []byte("%PDF-")
	pngMagic = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
)

func init() {
	// pdfcpu would otherwise create a config dir under $HOME on first use.
	api.DisableConfigDir()
}

// Config configures the rasterizer.
type Config struct {
	Binary string // pdftoppm binary name or absolute path; empty -> "pdftoppm"
	DPI    int    // 0 -> DefaultDPI
}

// Rasterizer renders the first page of a PDF to PNG using poppler's pdftoppm.
type Rasterizer struct {
	cfg    Config
	runner Runner
	log    *logger.Logger
}

// New creates a rasterizer that shells out to pdftoppm.
func New(cfg Config, log *logger.Logger) *Rasterizer {
	return NewWithRunner(cfg, execRunner{log: log}, log)
}

// NewWithRunner creates a rasterizer with a custom command runner.
func NewWithRunner(cfg Config, runner Runner, log *logger.Logger) *Rasterizer {
	if cfg.Binary == "" {
		cfg.Binary = "pdftoppm"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = DefaultDPI
	}
	return &Rasterizer{cfg: cfg, runner: runner, log: log.WithComponent("rasterizer")}
}

// Render validates the document and rasterizes page index 0 only,
// whatever the total page count. Unreadable or empty documents fail with
// a *domain.DocumentError.
func (r *Rasterizer) Render(ctx context.Context, doc *domain.UploadedDocument) (*domain.RenderedPage, error) {
	if !hasPDFHeader(doc.Data) {
		return nil, &domain.DocumentError{Reason: "missing %PDF header"}
	}

	pageCount, err := countPages(doc.Data)
	if err != nil {
		return nil, &domain.DocumentError{Reason: "cannot open document", Err: err}
	}
	if pageCount == 0 {
		return nil, &domain.DocumentError{Reason: "document has no pages"}
	}

	png, err := r.renderFirstPage(ctx, doc.Data)
	if err != nil {
		return nil, err
	}

	r.log.Debug().
		Str("filename", doc.Filename).
		Int("page_count", pageCount).
		Int("dpi", r.cfg.DPI).
		Int("png_bytes", len(png)).
		Msg("page rendered")

	return &domain.RenderedPage{
		Data:      png,
		MIMEType:  domain.PNGMIMEType,
		DPI:       r.cfg.DPI,
		PageCount: pageCount,
	}, nil
}

func (r *Rasterizer) renderFirstPage(ctx context.Context, pdf []byte) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "resume-raster-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			r.log.Warn().Err(err).Str("dir", tmpDir).Msg("failed to remove temp dir")
		}
	}()

	input := filepath.Join(tmpDir, "input.pdf")
	if err := os.WriteFile(input, pdf, 0o600); err != nil {
		return nil, fmt.Errorf("write temp pdf: %w", err)
	}

	// pdftoppm -png -r 300 -f 1 -l 1 -singlefile <in.pdf> <tmp/page>  ->  <tmp/page>.png
	prefix := filepath.Join(tmpDir, "page")
	_, stderr, err := r.runner.Run(ctx, r.cfg.Binary,
		"-png",
		"-r", strconv.Itoa(r.cfg.DPI),
		"-f", "1",
		"-l", "1",
		"-singlefile",
		input, prefix,
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("rasterizer binary %q: %w", r.cfg.Binary, err)
		}
		return nil, &domain.DocumentError{
			Reason: "rasterization failed",
			Err:    fmt.Errorf("%w: %s", err, strings.TrimSpace(string(stderr))),
		}
	}

	png, err := os.ReadFile(prefix + ".png")
	if err != nil || !bytes.HasPrefix(png, pngMagic) {
		return nil, &domain.DocumentError{Reason: "rasterizer produced no image", Err: err}
	}

	return png, nil
}

// hasPDFHeader accepts the header anywhere in the first KiB, as readers do.
func hasPDFHeader(data []byte) bool {
	head := data[:min(len(data), 1024)]
	return bytes.Contains(head, pdfMagic)
}

func countPages(data []byte) (n int, err error) {
	// pdfcpu can panic on some malformed inputs
	defer func() {
		if rec := recover(); rec != nil {
			n, err = 0, fmt.Errorf("pdf parser panic: %v", rec)
		}
	}()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return api.PageCount(bytes.NewReader(data), conf)
}
