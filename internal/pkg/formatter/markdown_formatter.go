package formatter

import (
	"bytes"
	"fmt"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(report *TripReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n_%s_\n\n", report.Title, createdAtLine(report))

	fmt.Fprintf(&buf, "## %s\n\n", preferencesHeading)
	for _, entry := range report.Preferences {
		fmt.Fprintf(&buf, "- **%s** %s\n", entry.Question, entry.Answer)
	}

	fmt.Fprintf(&buf, "\n## %s\n", destinationsHeading)
	for i, d := range report.Destinations {
		fmt.Fprintf(&buf, "\n### %d. %s\n\n%s\n", i+1, d.Name, d.Description)
		if d.ImageURL != "" {
			fmt.Fprintf(&buf, "\n![%s](%s)\n", d.Name, d.ImageURL)
		}
	}

	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
