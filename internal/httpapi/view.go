package httpapi

import (
	"embed"
	"encoding/base64"
	"html/template"

	"github.com/nguyentantai21042004/audio-summarizer/internal/intake"
	"github.com/nguyentantai21042004/audio-summarizer/internal/summarizer"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	pageTitle = "Audio Summarization App"
	aboutText = "This app uses Google's Generative AI to summarize audio files. " +
		"Upload your audio file in WAV or MP3 format and get a concise summary of its content."
)

// pageView is the data behind templates/index.html.
type pageView struct {
	Title     string
	About     string
	Accept    string
	FileName  string
	Preview   template.URL
	Succeeded bool
	Summary   string
	Error     string
	DocxTitle string
}

func newPageView() pageView {
	return pageView{Title: pageTitle, About: aboutText, Accept: intake.Accept}
}

func (v *pageView) setResult(r summarizer.Result) {
	if r.OK() {
		v.Succeeded = true
		v.Summary = r.Text
		return
	}
	v.Error = r.Display()
}

// audioDataURL embeds audio in the page so the browser can play it back.
func audioDataURL(mimeType string, audio []byte) template.URL {
	return template.URL("data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(audio))
}
