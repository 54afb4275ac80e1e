package summarizer

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	finishReasonUnspecified = "FINISH_REASON_UNSPECIFIED"
	finishReasonStop        = "STOP"
	finishReasonMaxTokens   = "MAX_TOKENS"
	blockReasonUnspecified  = "BLOCKED_REASON_UNSPECIFIED"
	harmCategoryPrefix      = "HARM_CATEGORY_"
)

type geminiProvider struct {
	apiKey  string
	baseURL string
}

// NewGeminiProvider returns a Provider that calls the Gemini API with apiKey.
// A missing key is reported on the first Generate call.
func NewGeminiProvider(apiKey, baseURL string) Provider {
	return &geminiProvider{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: baseURL,
	}
}

// Generate sends the prompt and the inline audio to Gemini.
// The client is created per call so no connection state outlives a request.
func (g *geminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if g.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cc := &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if g.baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: g.baseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	parts := []*genai.Part{
		genai.NewPartFromText(req.Prompt),
		genai.NewPartFromBytes(req.Audio, req.MimeType),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	result, err := client.Models.GenerateContent(ctx, req.Model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	return convertResponse(result)
}

// convertResponse maps a Gemini response onto Response. A prompt block or
// an abnormal finish reason becomes ErrPromptBlocked or ErrGenerationStopped.
func convertResponse(result *genai.GenerateContentResponse) (*Response, error) {
	resp := &Response{}
	if result == nil {
		return resp, nil
	}

	if fb := result.PromptFeedback; fb != nil {
		if reason := string(fb.BlockReason); reason != "" && reason != blockReasonUnspecified {
			if fb.BlockReasonMessage != "" {
				return nil, fmt.Errorf("%w: %s (%s)", ErrPromptBlocked, reason, fb.BlockReasonMessage)
			}
			return nil, fmt.Errorf("%w: %s", ErrPromptBlocked, reason)
		}
		for _, r := range fb.SafetyRatings {
			if r == nil {
				continue
			}
			resp.SafetyRatings = append(resp.SafetyRatings, SafetyRating{
				Category:    strings.TrimPrefix(string(r.Category), harmCategoryPrefix),
				Probability: string(r.Probability),
			})
		}
	}

	for _, c := range result.Candidates {
		if c == nil {
			continue
		}
		if stopped(string(c.FinishReason)) {
			return nil, fmt.Errorf("%w: %s", ErrGenerationStopped, c.FinishReason)
		}
		resp.Candidates = append(resp.Candidates, Candidate{
			Text:         contentText(c.Content),
			FinishReason: string(c.FinishReason),
		})
	}

	return resp, nil
}

func stopped(reason string) bool {
	switch reason {
	case "", finishReasonUnspecified, finishReasonStop, finishReasonMaxTokens:
		return false
	default:
		return true
	}
}

func contentText(content *genai.Content) string {
	if content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String()
}
