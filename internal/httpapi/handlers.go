package httpapi

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nguyentantai21042004/audio-summarizer/internal/intake"
	"github.com/nguyentantai21042004/audio-summarizer/internal/logger"
	"github.com/nguyentantai21042004/audio-summarizer/internal/summarizer"
)

// Room for multipart boundaries and headers on top of the audio itself.
const multipartOverhead = 1 << 20

type handler struct {
	intake          intake.Intake
	summarizer      summarizer.Summarizer
	logger          logger.Logger
	maxBytes        int64
	previewMaxBytes int64
}

// summaryResponse is the JSON body of POST /api/v1/summaries.
type summaryResponse struct {
	Status      summarizer.Kind `json:"status"`
	Summary     string          `json:"summary,omitempty"`
	Category    string          `json:"category,omitempty"`
	Probability string          `json:"probability,omitempty"`
	Message     string          `json:"message,omitempty"`
	FileName    string          `json:"file_name,omitempty"`
	RequestID   string          `json:"request_id,omitempty"`
}

type docxRequest struct {
	Title   string `json:"title" form:"title"`
	Summary string `json:"summary" form:"summary" binding:"required"`
}

// received is an upload that went through intake and the summarizer.
type received struct {
	name     string
	mimeType string
	audio    []byte
	result   summarizer.Result
}

func (h *handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", newPageView())
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

func (h *handler) summarizeForm(c *gin.Context) {
	view := newPageView()

	rec, apiErr := h.receive(c)
	if apiErr != nil {
		view.Error = "Failed to process the uploaded file: " + apiErr.Message
		c.HTML(apiErr.HTTPStatus(), "index.html", view)
		return
	}

	view.FileName = rec.name
	view.DocxTitle = strings.TrimSuffix(rec.name, filepath.Ext(rec.name))
	if int64(len(rec.audio)) <= h.previewMaxBytes {
		view.Preview = audioDataURL(rec.mimeType, rec.audio)
	}
	view.setResult(rec.result)

	c.HTML(resultStatus(rec.result), "index.html", view)
}

func (h *handler) summarizeAPI(c *gin.Context) {
	rec, apiErr := h.receive(c)
	if apiErr != nil {
		apiErr.RequestID = c.GetString(requestIDKey)
		c.JSON(apiErr.HTTPStatus(), apiErr)
		return
	}

	r := rec.result
	resp := summaryResponse{
		Status:      r.Kind,
		Summary:     r.Text,
		Category:    r.Category,
		Probability: r.Probability,
		FileName:    rec.name,
		RequestID:   c.GetString(requestIDKey),
	}
	if !r.OK() {
		resp.Message = r.Display()
	}

	c.JSON(resultStatus(r), resp)
}

func (h *handler) exportDocx(c *gin.Context) {
	var req docxRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, &APIError{
			Kind:      KindBadRequest,
			Message:   "summary is required",
			RequestID: c.GetString(requestIDKey),
		})
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "Summary"
	}

	var buf bytes.Buffer
	if err := summarizer.WriteDocx(&buf, title, req.Summary); err != nil {
		h.logger.Error(c.Request.Context(), "Failed to render docx: %v", err)
		c.JSON(http.StatusInternalServerError, &APIError{
			Kind:      KindInternal,
			Message:   "failed to render document",
			RequestID: c.GetString(requestIDKey),
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.docx"`, safeFileName(title)))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", buf.Bytes())
}

// receive stores the "audio" form file, summarizes it and deletes it again.
func (h *handler) receive(c *gin.Context) (received, *APIError) {
	ctx := c.Request.Context()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)

	fh, err := c.FormFile("audio")
	if c.Request.MultipartForm != nil {
		defer c.Request.MultipartForm.RemoveAll()
	}
	if err != nil {
		h.logger.Warn(ctx, "Rejected upload: %v", err)
		return received{}, formError(err)
	}

	f, err := fh.Open()
	if err != nil {
		return received{}, &APIError{Kind: KindInternal, Message: "failed to open upload: " + err.Error()}
	}
	defer f.Close()

	up, err := h.intake.Store(ctx, fh.Filename, f)
	if err != nil {
		h.logger.Warn(ctx, "Rejected upload %s: %v", fh.Filename, err)
		return received{}, intakeError(err)
	}
	defer func() {
		if err := up.Close(); err != nil {
			h.logger.Warn(ctx, "Failed to delete upload %s: %v", up.Path, err)
		}
	}()

	audio, err := up.ReadAll()
	if err != nil {
		return received{}, &APIError{Kind: KindInternal, Message: "failed to read upload: " + err.Error()}
	}

	h.logger.Info(ctx, "Summarizing %s (%d bytes, %s)", up.Name, up.Size, up.MimeType)
	result := h.summarizer.Summarize(ctx, audio, up.MimeType)

	return received{
		name:     up.Name,
		mimeType: up.MimeType,
		audio:    audio,
		result:   result,
	}, nil
}

func formError(err error) *APIError {
	if errors.Is(err, http.ErrMissingFile) {
		return intakeError(errMissingFile)
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return intakeError(err)
	}
	return &APIError{Kind: KindBadRequest, Message: "invalid multipart form: " + err.Error()}
}

func resultStatus(r summarizer.Result) int {
	switch r.Kind {
	case summarizer.KindSuccess:
		return http.StatusOK
	case summarizer.KindFailure:
		if r.TimedOut {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	default:
		return http.StatusUnprocessableEntity
	}
}

func safeFileName(title string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, title)
	name = strings.Trim(name, "-")
	if name == "" {
		return "summary"
	}
	return name
}
