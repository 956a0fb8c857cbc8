package formatter

import (
	"bytes"
	"fmt"

	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (mf *DOCXFormatter) Format(report *TripReport) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	addStyled(doc, "Title", report.Title)
	addText(doc, createdAtLine(report))

	addStyled(doc, "Heading1", preferencesHeading)
	for _, entry := range report.Preferences {
		par := doc.AddParagraph()
		question := par.AddRun()
		question.Properties().SetBold(true)
		question.AddText(entry.Question + " ")
		par.AddRun().AddText(entry.Answer)
	}

	addStyled(doc, "Heading1", destinationsHeading)
	for i, d := range report.Destinations {
		addStyled(doc, "Heading2", fmt.Sprintf("%d. %s", i+1, d.Name))
		addText(doc, d.Description)
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addStyled(doc *document.Document, style, text string) {
	par := doc.AddParagraph()
	par.SetStyle(style)
	par.AddRun().AddText(text)
}

func addText(doc *document.Document, text string) {
	doc.AddParagraph().AddRun().AddText(text)
}

func (mf *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (mf *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
