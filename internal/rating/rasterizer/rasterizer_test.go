package rasterizer_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/resumerater/resumerater-backend/internal/rating/domain"
	"github.com/resumerater/resumerater-backend/internal/rating/rasterizer"
	"github.com/resumerater/resumerater-backend/pkg/logger"
	"github.com/resumerater/resumerater-backend/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records its arguments and writes a PNG next to the output prefix.
type fakeRunner struct {
	name   string
	args   []string
	output []byte
	stderr []byte
	err    error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.name = name
	f.args = args
	if f.err != nil {
		return nil, f.stderr, f.err
	}
	if f.output != nil {
		prefix := args[len(args)-1]
		if err := os.WriteFile(prefix+".png", f.output, 0o600); err != nil {
			return nil, nil, err
		}
	}
	return nil, nil, nil
}

func TestRender_FirstPageOnly(t *testing.T) {
	runner := &fakeRunner{output: testutil.PNG}
	r := rasterizer.NewWithRunner(rasterizer.Config{}, runner, logger.Nop())

	page, err := r.Render(context.Background(), &domain.UploadedDocument{
		Filename: "cv.pdf",
		Data:     testutil.PDF(3),
	})
	require.NoError(t, err)

	assert.Equal(t, testutil.PNG, page.Data)
	assert.Equal(t, domain.PNGMIMEType, page.MIMEType)
	assert.Equal(t, rasterizer.DefaultDPI, page.DPI)
	assert.Equal(t, 3, page.PageCount)

	assert.Equal(t, "pdftoppm", runner.name)
	require.Len(t, runner.args, 11)
	assert.Equal(t, []string{"-png", "-r", "300", "-f", "1", "-l", "1", "-singlefile"}, runner.args[:8])
	assert.Equal(t, "input.pdf", filepath.Base(runner.args[8]))
}

func TestRender_CustomConfig(t *testing.T) {
	runner := &fakeRunner{output: testutil.PNG}
	r := rasterizer.NewWithRunner(rasterizer.Config{Binary: "/opt/poppler/pdftoppm", DPI: 150}, runner, logger.Nop())

	page, err := r.Render(context.Background(), &domain.UploadedDocument{Data: testutil.PDF(1)})
	require.NoError(t, err)

	assert.Equal(t, 150, page.DPI)
	assert.Equal(t, "/opt/poppler/pdftoppm", runner.name)
	assert.Equal(t, "150", runner.args[2])
}

func TestRender_TempDirRemoved(t *testing.T) {
	runner := &fakeRunner{output: testutil.PNG}
	r := rasterizer.NewWithRunner(rasterizer.Config{}, runner, logger.Nop())

	_, err := r.Render(context.Background(), &domain.UploadedDocument{Data: testutil.PDF(1)})
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Dir(runner.args[8]))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRender_InvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"not a pdf", []byte("hello, I am a text file")},
		{"truncated pdf", []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog")},
		{"zero pages", testutil.PDF(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{output: testutil.PNG}
			r := rasterizer.NewWithRunner(rasterizer.Config{}, runner, logger.Nop())

			_, err := r.Render(context.Background(), &domain.UploadedDocument{Data: tt.data})
			require.Error(t, err)

			var docErr *domain.DocumentError
			assert.True(t, errors.As(err, &docErr))
			assert.ErrorIs(t, err, domain.ErrInvalidDocument)
			assert.Empty(t, runner.name, "rasterizer must not run")
		})
	}
}

func TestRender_RunnerFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("exit status 1"), stderr: []byte("Syntax Error: Couldn't read xref table")}
	r := rasterizer.NewWithRunner(rasterizer.Config{}, runner, logger.Nop())

	_, err := r.Render(context.Background(), &domain.UploadedDocument{Data: testutil.PDF(1)})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)
	assert.Contains(t, err.Error(), "xref table")
}

func TestRender_MissingBinary(t *testing.T) {
	runner := &fakeRunner{err: &exec.Error{Name: "pdftoppm", Err: exec.ErrNotFound}}
	r := rasterizer.NewWithRunner(rasterizer.Config{}, runner, logger.Nop())

	_, err := r.Render(context.Background(), &domain.UploadedDocument{Data: testutil.PDF(1)})
	require.Error(t, err)
	assert.ErrorIs(t, err, exec.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrInvalidDocument)
}

func TestRender_NoImageProduced(t *testing.T) {
	runner := &fakeRunner{output: []byte("not a png")}
	r := rasterizer.NewWithRunner(rasterizer.Config{}, runner, logger.Nop())

	_, err := r.Render(context.Background(), &domain.UploadedDocument{Data: testutil.PDF(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)
}

func TestRender_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &fakeRunner{err: errors.New("signal: killed")}
	r := rasterizer.NewWithRunner(rasterizer.Config{}, runner, logger.Nop())

	_, err := r.Render(ctx, &domain.UploadedDocument{Data: testutil.PDF(1)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRender_RealPdftoppm(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping pdftoppm test in short mode")
	}
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		t.Skip("pdftoppm not installed")
	}

	r := rasterizer.New(rasterizer.Config{DPI: 72}, logger.Nop())
	page, err := r.Render(context.Background(), &domain.UploadedDocument{Data: testutil.PDF(2)})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(page.Data, testutil.PNG[:8]))
	assert.Equal(t, 2, page.PageCount)
}
