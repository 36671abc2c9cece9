package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/linkpulse/linkpulse/internal/model"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
	gray   = color.New(color.FgHiBlack)
	cyan   = color.New(color.FgCyan)
)

func colorFor(status model.Status) *color.Color {
	switch status {
	case model.StatusHealthy:
		return green
	case model.StatusWarning, model.StatusRedirect:
		return yellow
	default:
		return red
	}
}

func markFor(status model.Status) string {
	switch status {
	case model.StatusHealthy:
		return "✔"
	case model.StatusWarning, model.StatusRedirect:
		return "↪"
	default:
		return "✗"
	}
}

// statusLabel renders the numeric status or the transport error code.
func statusLabel(code model.StatusCode) string {
	if code.ErrCode != "" {
		return code.ErrCode
	}
	return fmt.Sprintf("%d", code.Code)
}

// Print writes a color-coded line per result followed by the summary block.
func Print(w io.Writer, results []model.ProbeResult, summary model.BatchSummary) {
	for _, res := range results {
		c := colorFor(res.Status)
		_, _ = c.Fprintf(w, "%s [%s] %s", markFor(res.Status), statusLabel(res.StatusCode), res.URL)
		_, _ = gray.Fprintf(w, " %s %dms\n", res.Message, res.ResponseTimeMs)
		for _, hop := range res.RedirectChain {
			_, _ = fmt.Fprintf(w, "  ↪ %s → %d → %s\n", hop.FromURL, hop.HTTPStatus, hop.LocationHeader)
		}
	}
	printSummary(w, summary)
}

func printSummary(w io.Writer, summary model.BatchSummary) {
	_, _ = cyan.Fprintln(w, "────────────────────────────────────────")
	_, _ = fmt.Fprintf(w, "Total: %d | Avg: %dms\n", summary.Total, summary.AverageResponseTimeMs)
	for _, status := range []model.Status{
		model.StatusHealthy, model.StatusBroken, model.StatusWarning,
		model.StatusRedirect, model.StatusError,
	} {
		if n := summary.CountsByStatus[status]; n > 0 {
			_, _ = colorFor(status).Fprintf(w, "  %s: %d\n", status, n)
		}
	}
	for _, e := range summary.ErrorList {
		_, _ = red.Fprintf(w, "  [!] %s: %s\n", e.URL, e.ErrorDetail)
	}
}
