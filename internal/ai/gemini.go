// Package ai wraps the Gemini API behind the two calls the application
// needs: free-text query parsing into a case filter specification, and
// slide image analysis. Both degrade gracefully when the integration is not
// configured or the call fails.
package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"pathology-case-server/internal/metrics"
	"pathology-case-server/internal/models"
)

const defaultModel = "gemini-2.5-flash"

// Client is the Gemini integration boundary. A nil inner client means the
// integration is unconfigured; callers still get deterministic fallbacks.
type Client struct {
	log    *zap.Logger
	client *genai.Client
	model  string
}

// NewClient builds the integration. An empty API key yields an unconfigured
// client rather than an error, so the rest of the system keeps working with
// fallback behavior.
func NewClient(ctx context.Context, log *zap.Logger, apiKey, model string) *Client {
	if model == "" {
		model = defaultModel
	}
	c := &Client{log: log, model: model}

	if apiKey == "" {
		log.Warn("Gemini API key is not set; AI features fall back to keyword search")
		return c
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		log.Error("failed to create Gemini client; AI features disabled", zap.Error(err))
		return c
	}
	c.client = client
	return c
}

// Configured reports whether the Gemini integration is usable.
func (c *Client) Configured() bool { return c.client != nil }

// filterSchema constrains query parsing to the case filter shape.
func filterSchema() *genai.Schema {
	statuses := make([]string, len(models.CaseStatuses))
	for i, s := range models.CaseStatuses {
		statuses[i] = string(s)
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"status": {
				Type:        genai.TypeString,
				Enum:        statuses,
				Description: "The status of the case.",
			},
			"priority": {
				Type:        genai.TypeString,
				Enum:        []string{string(models.PriorityRoutine), string(models.PriorityStat)},
				Description: "The priority of the case.",
			},
			"patientName": {
				Type:        genai.TypeString,
				Description: `The name of the patient. e.g., "John Doe".`,
			},
			"assignedTo": {
				Type:        genai.TypeString,
				Description: `The name of the pathologist assigned to the case. e.g., "Dr. Reed".`,
			},
			"accessionNumber": {
				Type:        genai.TypeString,
				Description: `The unique accession number for the case, e.g., "S24-1001".`,
			},
		},
	}
}

// ParseQuery converts free text into a filter specification. On any failure
// (unconfigured integration, transport error, unparseable response) the
// whole input degrades to a patient-name substring filter.
func (c *Client) ParseQuery(ctx context.Context, query string) models.CaseFilters {
	fallback := models.CaseFilters{PatientName: query}
	if c.client == nil {
		return fallback
	}

	prompt := fmt.Sprintf("Parse the following user query to filter pathology cases and extract the filter criteria into a JSON object matching the provided schema. Query: %q", query)

	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   filterSchema(),
		})
	if err != nil {
		metrics.AIRequests.WithLabelValues("parse_query", "error").Inc()
		c.log.Warn("query parsing failed, falling back to keyword search", zap.Error(err))
		return fallback
	}

	text := resp.Text()
	if text == "" {
		metrics.AIRequests.WithLabelValues("parse_query", "empty").Inc()
		return models.CaseFilters{}
	}

	var filters models.CaseFilters
	if err := json.Unmarshal([]byte(text), &filters); err != nil {
		metrics.AIRequests.WithLabelValues("parse_query", "error").Inc()
		c.log.Warn("query response was not valid filter JSON", zap.Error(err))
		return fallback
	}

	metrics.AIRequests.WithLabelValues("parse_query", "ok").Inc()
	return filters
}

// AnalyzeSlide runs an analysis prompt against slide image bytes and
// returns the report text.
func (c *Client) AnalyzeSlide(ctx context.Context, image []byte, mimeType, prompt string) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("AI integration is not configured")
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	content := genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromBytes(image, mimeType),
	}, genai.RoleUser)

	resp, err := c.client.Models.GenerateContent(ctx, c.model, []*genai.Content{content}, nil)
	if err != nil {
		metrics.AIRequests.WithLabelValues("analyze_slide", "error").Inc()
		return "", fmt.Errorf("slide analysis: %w", err)
	}

	metrics.AIRequests.WithLabelValues("analyze_slide", "ok").Inc()
	return resp.Text(), nil
}
