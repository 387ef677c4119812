// Package export renders an already-fetched, already-authorized report
// into downloadable document bytes. It is stateless and never touches
// persistence.
package export

import (
	"fmt"
	"time"

	"github.com/oksasatya/weekly-report-api/internal/domain/entity"
)

// Format selects the output document type.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatWord Format = "doc"
)

// ParseFormat validates a format string from the query surface.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPDF, FormatWord:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// ContentType returns the MIME type served for downloads of this format.
func (f Format) ContentType() string {
	if f == FormatWord {
		return "application/msword"
	}
	return "application/pdf"
}

// Filename builds a download name from the report's week start date.
func (f Format) Filename(r *entity.Report) string {
	return fmt.Sprintf("weekly-report-%s.%s", r.WeekStartDate.Format("2006-01-02"), string(f))
}

// Render produces the document bytes for the requested format. Optional
// sections that are absent are simply omitted; rendering never fails on
// missing optional fields.
func Render(r *entity.Report, f Format) ([]byte, error) {
	if f == FormatWord {
		return Word(r)
	}
	return PDF(r)
}

func formatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

func formatTimeSpent(ts *float64) string {
	if ts == nil {
		return "-"
	}
	return fmt.Sprintf("%gh", *ts)
}

func orMedium(priority string) string {
	if priority == "" {
		return entity.PriorityMedium
	}
	return priority
}
