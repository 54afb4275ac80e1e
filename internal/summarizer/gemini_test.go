package summarizer

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/nguyentantai21042004/audio-summarizer/internal/logger"
)

func TestConvertResponse(t *testing.T) {
	t.Run("joins text parts and skips thoughts", func(t *testing.T) {
		resp, err := convertResponse(&genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{
					{Text: "The speaker "},
					{Text: "planning...", Thought: true},
					{Text: "explains the roadmap."},
				}},
				FinishReason: genai.FinishReason("STOP"),
			}},
		})
		require.NoError(t, err)
		assert.Equal(t, "The speaker explains the roadmap.", resp.Text())
	})

	t.Run("max tokens is not a stop", func(t *testing.T) {
		resp, err := convertResponse(&genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content:      &genai.Content{Parts: []*genai.Part{{Text: "partial"}}},
				FinishReason: genai.FinishReason("MAX_TOKENS"),
			}},
		})
		require.NoError(t, err)
		assert.Equal(t, "partial", resp.Text())
	})

	t.Run("safety finish reason stops generation", func(t *testing.T) {
		_, err := convertResponse(&genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{FinishReason: genai.FinishReason("SAFETY")}},
		})
		assert.ErrorIs(t, err, ErrGenerationStopped)
	})

	t.Run("block reason blocks prompt", func(t *testing.T) {
		_, err := convertResponse(&genai.GenerateContentResponse{
			PromptFeedback: &genai.GenerateContentResponsePromptFeedback{
				BlockReason: genai.BlockedReason("SAFETY"),
			},
		})
		assert.ErrorIs(t, err, ErrPromptBlocked)
	})

	t.Run("unspecified block reason is ignored", func(t *testing.T) {
		resp, err := convertResponse(&genai.GenerateContentResponse{
			PromptFeedback: &genai.GenerateContentResponsePromptFeedback{
				BlockReason: genai.BlockedReason("BLOCKED_REASON_UNSPECIFIED"),
			},
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Candidates)
	})

	t.Run("prompt ratings keep order and lose category prefix", func(t *testing.T) {
		resp, err := convertResponse(&genai.GenerateContentResponse{
			PromptFeedback: &genai.GenerateContentResponsePromptFeedback{
				SafetyRatings: []*genai.SafetyRating{
					{Category: genai.HarmCategory("HARM_CATEGORY_HATE_SPEECH"), Probability: genai.HarmProbability("NEGLIGIBLE")},
					{Category: genai.HarmCategory("HARM_CATEGORY_HARASSMENT"), Probability: genai.HarmProbability("HIGH")},
				},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, []SafetyRating{
			{Category: "HATE_SPEECH", Probability: "NEGLIGIBLE"},
			{Category: "HARASSMENT", Probability: "HIGH"},
		}, resp.SafetyRatings)
	})

	t.Run("nil response", func(t *testing.T) {
		resp, err := convertResponse(nil)
		require.NoError(t, err)
		assert.Empty(t, resp.Candidates)
	})
}

func TestGeminiProviderAgainstServer(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Result
	}{
		{
			name: "summary",
			body: `{"candidates":[{"content":{"role":"model","parts":[{"text":"A short summary."}]},"finishReason":"STOP"}]}`,
			want: Success("A short summary."),
		},
		{
			name: "stop without text",
			body: `{"candidates":[{"content":{"role":"model","parts":[]},"finishReason":"STOP"}]}`,
			want: Empty(),
		},
		{
			name: "prompt blocked",
			body: `{"promptFeedback":{"blockReason":"SAFETY"}}`,
			want: PromptBlocked(),
		},
		{
			name: "blocked by rating",
			body: `{"promptFeedback":{"safetyRatings":[{"category":"HARM_CATEGORY_HARASSMENT","probability":"HIGH"}]}}`,
			want: Blocked("HARASSMENT", "HIGH"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bodies := make(chan string, 1)
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				b, _ := io.ReadAll(r.Body)
				select {
				case bodies <- string(b):
				default:
				}
				w.Header().Set("Content-Type", "application/json")
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			cfg := testConfig(t)
			cfg.Gemini.APIKey = "test-key"
			cfg.Gemini.BaseURL = srv.URL + "/"
			s := NewGemini(cfg, logger.Nop())

			got := s.Summarize(context.Background(), sampleAudio, "audio/mpeg")

			assert.Equal(t, tt.want, got)
			gotBody := <-bodies
			assert.Contains(t, gotBody, "Please summarize the following audio.")
			assert.Contains(t, gotBody, "audio/mpeg")
		})
	}
}
