package summarizer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/newscast/internal/models"
)

const (
	fontName  = "Times New Roman"
	fontSize  = 13
	titleSize = 16
	labelSize = 14
)

var reBold = regexp.MustCompile(`\*\*(.+?)\*\*`)

// ExportDocx writes the article metadata and the narration script to a
// styled docx file at path.
func ExportDocx(path string, article models.Article, summary models.Summary, script models.Script) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), article.Title, true, titleSize)
	addField(doc.AddParagraph(""), "Nguồn", string(article.Source))
	addField(doc.AddParagraph(""), "URL", article.URL)
	addField(doc.AddParagraph(""), "Tóm tắt", summaryLabel(summary))
	doc.AddParagraph("")

	addStyledRun(doc.AddParagraph(""), "Kịch bản", true, labelSize)
	for _, part := range []string{script.Intro, script.Body, script.Outro} {
		if part = strings.TrimSpace(part); part == "" {
			continue
		}
		addRichText(doc.AddParagraph(""), part)
	}

	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("save docx %s: %w", path, err)
	}
	return nil
}

func summaryLabel(summary models.Summary) string {
	if summary.Chunks == 0 {
		return string(summary.Provenance)
	}
	return fmt.Sprintf("%s (%d/%d chunks)", summary.Provenance, summary.ChunksSummarized, summary.Chunks)
}

func addField(p *docx.Paragraph, label, value string) {
	p.AddText(label+": ").Font(fontName).Size(fontSize).Color("000000").Bold(true)
	p.AddText(value).Font(fontName).Size(fontSize).Color("000000")
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	text = cleanMarkdownInline(text)
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

// addRichText keeps **bold** spans a model sometimes emits as bold runs.
func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			p.AddText(cleanMarkdownInline(part)).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(matches) {
			p.AddText(cleanMarkdownInline(matches[i][1])).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
