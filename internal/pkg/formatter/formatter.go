package formatter

import (
	"fmt"
	"time"

	"github.com/futig/wanderlust-backend/internal/entity"
)

const (
	preferencesHeading  = "Your preferences"
	destinationsHeading = "Suggested destinations"
	createdAtLayout     = "January 2, 2006 15:04 MST"
)

// TripReport is a saved history item prepared for export
type TripReport struct {
	Title        string
	CreatedAt    time.Time
	Preferences  []entity.SummaryEntry
	Destinations []entity.Destination
}

type Formatter interface {
	Format(report *TripReport) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func createdAtLine(report *TripReport) string {
	return "Saved on " + report.CreatedAt.UTC().Format(createdAtLayout)
}
