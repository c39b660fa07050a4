// coach/gemini.go
package coach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/wfunc/arena/models"
)

// ErrNoAPIKey means the client was built without credentials.
var ErrNoAPIKey = errors.New("gemini api key not configured")

// Strategist produces tactical tips for a tournament.
type Strategist interface {
	Tips(ctx context.Context, t models.Tournament) ([]string, error)
}

// GeminiClient calls the generateContent REST endpoint.
type GeminiClient struct {
	endpoint string
	model    string
	apiKey   string
	timeout  time.Duration
	client   *fasthttp.Client
}

func NewGeminiClient(endpoint, model, apiKey string, timeout time.Duration) *GeminiClient {
	return &GeminiClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    model,
		apiKey:   apiKey,
		timeout:  timeout,
		client: &fasthttp.Client{
			MaxConnsPerHost:     20,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		},
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Prompt is the instruction sent for t.
func Prompt(t models.Tournament) string {
	return fmt.Sprintf(`Act as an elite Free Fire Pro Coach. Analyze this tournament and give 3 short, punchy tactical tips:
Tournament: %s
Mode: %s
Map: %s
Entry Fee: %d

Format your response as a JSON array of strings. Only return the JSON.`, t.Title, t.Type, t.Map, t.EntryFee)
}

func (c *GeminiClient) url() string {
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.endpoint, c.model, url.QueryEscape(c.apiKey))
}

// Tips asks the model for tips. The raw list is returned as parsed; callers
// decide what counts as usable.
func (c *GeminiClient) Tips(ctx context.Context, t models.Tournament) ([]string, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	body, err := json.Marshal(generateRequest{
		Contents:         []content{{Role: "user", Parts: []part{{Text: Prompt(t)}}}},
		GenerationConfig: generationConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url())
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.timeout)
	}
	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("gemini request: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("gemini API error: %d", resp.StatusCode())
	}

	return parseTips(resp.Body())
}

func parseTips(body []byte) ([]string, error) {
	var result generateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode gemini response: %w", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("gemini response has no content")
	}

	var tips []string
	text := strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text)
	if err := json.Unmarshal([]byte(text), &tips); err != nil {
		return nil, fmt.Errorf("decode tips %q: %w", text, err)
	}
	return tips, nil
}
