package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wahlandcase/tickethook/internal/hook"
	"github.com/wahlandcase/tickethook/internal/models"
)

func TestPrinter_Render(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{}, true)

	report := hook.Report{
		RefsProcessed:    1,
		CommitsProcessed: 2,
		Deliveries: []models.Delivery{
			models.NewDelivery("tracker", "ABC-1", "c0ffee1234", models.Delivered),
			models.NewDelivery("chat", "ABC-1", "c0ffee1234", models.Failed("API error (status 403)")),
		},
	}

	out := p.Render(report, "refs/heads/master", false)
	assert.Contains(t, out, "refs/heads/master")
	assert.Contains(t, out, "✓ ABC-1      tracker c0ffee1")
	assert.Contains(t, out, "✗ ABC-1      chat    c0ffee1 (API error (status 403))")
	assert.Contains(t, out, "2 commit(s), 2 notification(s), 1 failed")
	assert.NotContains(t, out, "DRY RUN")
	assert.NotContains(t, out, "\x1b[")
}

func TestPrinter_DryRun(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{}, true)

	report := hook.Report{
		RefsProcessed:    1,
		CommitsProcessed: 1,
		Deliveries: []models.Delivery{
			models.NewDelivery("tracker", "XYZ-9", "abc", models.Skipped("dry run")),
		},
	}

	out := p.Render(report, "refs/heads/master", true)
	assert.Contains(t, out, "DRY RUN MODE")
	assert.Contains(t, out, "- XYZ-9      tracker abc (dry run)")
}

func TestPrinter_PrintsNothingWithoutTrackedRefs(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true)

	require.NoError(t, p.Print(hook.Report{}, "refs/heads/master", false))
	assert.Empty(t, buf.String())
}

func TestBranchColor(t *testing.T) {
	assert.Equal(t, ColorRed, BranchColor("refs/heads/master"))
	assert.Equal(t, ColorRed, BranchColor("main"))
	assert.Equal(t, ColorYellow, BranchColor("refs/heads/staging"))
	assert.Equal(t, ColorWhite, BranchColor("refs/heads/feature/x"))
}
