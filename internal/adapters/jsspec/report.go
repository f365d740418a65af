package jsspec

import (
	"fmt"
	"io"

	"go.trai.ch/ybuild/internal/core/domain"
	"go.trai.ch/ybuild/internal/ui/style"
)

// WriteReport prints one line per spec, failure messages indented below,
// followed by a summary line.
func WriteReport(w io.Writer, report *domain.SpecReport) {
	for _, res := range report.Results {
		switch res.Status {
		case domain.SpecPassed:
			_, _ = fmt.Fprintf(w, "%s %s\n", style.Check, res.FullName)
		case domain.SpecPending:
			_, _ = fmt.Fprintf(w, "%s %s (pending)\n", style.Skip, res.FullName)
		default:
			_, _ = fmt.Fprintf(w, "%s %s\n", style.Cross, res.FullName)
			for _, msg := range res.Failures {
				_, _ = fmt.Fprintf(w, "    %s\n", msg)
			}
		}
	}

	_, _ = fmt.Fprintf(w, "\n%d specs, %d failures, %d pending\n",
		len(report.Results), report.Count(domain.SpecFailed), report.Count(domain.SpecPending))
}
