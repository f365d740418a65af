package output_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/ybuild/internal/ui/output"
)

func TestColorProfile_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, output.ColorProfile())
	assert.Equal(t, termenv.Ascii, output.ColorProfileANSI())
}

func TestColorProfileANSI(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	assert.Equal(t, termenv.ANSI, output.ColorProfileANSI())
}

func TestProfileFor(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	assert.Equal(t, termenv.ANSI, output.ProfileFor(true)())

	p := output.ProfileFor(false)()
	assert.True(t, p >= termenv.TrueColor && p <= termenv.Ascii)
}

func TestNew_WritesThrough(t *testing.T) {
	var buf bytes.Buffer
	out := output.NewWithProfile(&buf, output.ColorProfileANSI)
	_, _ = out.WriteString("bundle")
	assert.Equal(t, "bundle", buf.String())
}

func TestNew_NilDefaultsToStderr(t *testing.T) {
	assert.NotNil(t, output.New(nil))
}
