package presenter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/resumerater/resumerater-backend/internal/rating/domain"
	"github.com/resumerater/resumerater-backend/pkg/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPresenter(t *testing.T) *Presenter {
	t.Helper()
	p, err := New()
	require.NoError(t, err)
	return p
}

func TestRenderIndex(t *testing.T) {
	p := newTestPresenter(t)

	var buf bytes.Buffer
	require.NoError(t, p.RenderIndex(&buf, i18n.LocaleEnglish, 20<<20))

	out := buf.String()
	assert.Contains(t, out, "<title>Resume Rating Tool</title>")
	assert.Contains(t, out, `name="resume"`)
	assert.Contains(t, out, `enctype="multipart/form-data"`)
	assert.Contains(t, out, "max 20 MB")
}

func TestRenderResult(t *testing.T) {
	p := newTestPresenter(t)

	rating := &domain.Rating{
		Filename:    "jane_doe.pdf",
		Score:       7,
		MaxScore:    domain.MaxScore,
		Suggestions: "- Add **metrics**\n- Shorten the summary",
		CreatedAt:   time.Now(),
	}

	var buf bytes.Buffer
	require.NoError(t, p.RenderResult(&buf, i18n.LocaleEnglish, rating))

	out := buf.String()
	assert.Contains(t, out, "Uploaded File: <strong>jane_doe.pdf</strong>")
	assert.Contains(t, out, "Resume Score (out of 10)")
	assert.Contains(t, out, `class="gauge-value"`)
	assert.Contains(t, out, ">7</text>")
	assert.Contains(t, out, "Suggestions to Improve:")
	assert.Contains(t, out, "<strong>metrics</strong>")
	assert.Contains(t, out, "<li>Shorten the summary</li>")
}

func TestRenderResult_EscapesUntrustedText(t *testing.T) {
	p := newTestPresenter(t)

	rating := &domain.Rating{
		Filename:    `<img src=x onerror=alert(1)>.pdf`,
		Score:       3,
		MaxScore:    domain.MaxScore,
		Suggestions: "Fix layout\n<script>alert('x')</script>",
	}

	var buf bytes.Buffer
	require.NoError(t, p.RenderResult(&buf, i18n.LocaleEnglish, rating))

	out := buf.String()
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "<img src=x")
	assert.Contains(t, out, "Fix layout")
}

func TestRenderResult_German(t *testing.T) {
	p := newTestPresenter(t)

	var buf bytes.Buffer
	require.NoError(t, p.RenderResult(&buf, i18n.LocaleGerman, &domain.Rating{Score: 5, MaxScore: 10, Suggestions: domain.NoSuggestions}))

	assert.Contains(t, buf.String(), `lang="de"`)
	assert.NotContains(t, buf.String(), "Suggestions to Improve:")
}

func TestRenderError(t *testing.T) {
	p := newTestPresenter(t)

	var buf bytes.Buffer
	require.NoError(t, p.RenderError(&buf, i18n.LocaleEnglish, "cv.pdf", "Could not extract a numeric rating from the model's response."))

	out := buf.String()
	assert.Contains(t, out, `role="alert"`)
	assert.Contains(t, out, "Could not extract a numeric rating from the model&#39;s response.")
	assert.Contains(t, out, "cv.pdf")
	assert.NotContains(t, out, "<svg")
}

func TestNewGauge(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		want    int
		wantBar bool
	}{
		{"zero has no bar", 0, 0, false},
		{"middle", 5, 5, true},
		{"full", 10, 10, true},
		{"above axis pinned", 14, 10, true},
		{"below axis pinned", -2, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGauge("Score", tt.value, 10)
			assert.Equal(t, tt.want, g.Value)
			assert.Equal(t, tt.wantBar, g.Bar != "")
			assert.Len(t, g.Ticks, 11)
			assert.Equal(t, "0", g.Ticks[0].Label)
			assert.Equal(t, "10", g.Ticks[10].Label)
		})
	}
}

func TestNewGauge_ArcEndpoints(t *testing.T) {
	g := NewGauge("Score", 5, 10)

	// dial starts at the left end; half way lands at the top centre
	assert.True(t, strings.HasPrefix(g.Bar, "M 30.0 175.0 A 120 120 0 0 1 "), g.Bar)
	assert.True(t, strings.HasSuffix(g.Bar, "150.0 55.0"), g.Bar)
	assert.True(t, strings.HasSuffix(g.Track, "270.0 175.0"), g.Track)
}
