package summarizer

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

var (
	reHeading = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet  = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
)

// WriteDocx renders a markdown summary as a .docx document and writes it to w.
func WriteDocx(w io.Writer, title, markdown string) error {
	f, err := os.CreateTemp("", "summary-*.docx")
	if err != nil {
		return fmt.Errorf("create temp docx: %w", err)
	}
	name := f.Name()
	f.Close()
	defer os.Remove(name)

	if err := markdownToDocx(title, markdown, name); err != nil {
		return fmt.Errorf("render docx: %w", err)
	}

	out, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("open rendered docx: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(w, out); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}

// markdownToDocx converts markdown text to a styled docx file.
func markdownToDocx(title, markdown, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)

	lines := strings.Split(markdown, "\n")
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || trimmed == "---" {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			level := len(m[1])
			size := headingSize(level)
			p := doc.AddParagraph("")
			addStyledRun(p, m[2], true, size)
			continue
		}

		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			p := doc.AddParagraph("")
			addRichText(p, "• "+m[1])
			continue
		}

		p := doc.AddParagraph("")
		addRichText(p, trimmed)
	}

	return doc.SaveTo(outputPath)
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 15
	case 3:
		return 14
	default:
		return fontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	text = cleanMarkdownInline(text)
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			clean := cleanMarkdownInline(part)
			p.AddText(clean).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(matches) {
			clean := cleanMarkdownInline(matches[i][1])
			p.AddText(clean).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
