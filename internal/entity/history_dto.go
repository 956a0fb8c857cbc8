package entity

type ResultFormat string

const (
	FormatMarkdown ResultFormat = "markdown"
	FormatDOCX     ResultFormat = "docx"
	FormatPDF      ResultFormat = "pdf"
)

func (f ResultFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatDOCX, FormatPDF:
		return true
	default:
		return false
	}
}

type SaveHistoryRequest struct {
	Preferences Preferences   `json:"preferences" validate:"required"`
	Suggestions []Destination `json:"suggestions" validate:"required,min=1,dive"`
}

type HistorySummary struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	SuggestionsCount int    `json:"suggestions_count"`
	CreatedAt        string `json:"created_at"`
}

type ListHistoryResponse struct {
	Items []*HistorySummary `json:"items"`
}
