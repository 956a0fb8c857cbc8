package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/futig/wanderlust-backend/internal/config"
	"github.com/futig/wanderlust-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

var suggestSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"destinations": {
			Type:        genai.TypeArray,
			Description: "An array of suggested travel destinations.",
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":        {Type: genai.TypeString, Description: "The name of the destination."},
					"description": {Type: genai.TypeString, Description: "A short description of the destination."},
					"imageUrl":    {Type: genai.TypeString, Description: "A beautiful, descriptive prompt for an image of the destination."},
				},
				Required:         []string{"name", "description", "imageUrl"},
				PropertyOrdering: []string{"name", "description", "imageUrl"},
			},
		},
	},
	Required: []string{"destinations"},
}

var briefSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"destinationName": {Type: genai.TypeString, Description: "The name of the destination."},
		"imageUrl":        {Type: genai.TypeString, Description: "The image URL of the destination."},
		"summary":         {Type: genai.TypeString, Description: "A one-sentence summary of the destination."},
	},
	Required:         []string{"summary"},
	PropertyOrdering: []string{"destinationName", "imageUrl", "summary"},
}

var _ Connector = &GeminiConnector{}

// GeminiConnector calls Gemini with structured JSON output
type GeminiConnector struct {
	client      *genai.Client
	model       string
	temperature float32
	logger      *zap.Logger
}

func NewGeminiConnector(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (*GeminiConnector, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiConnector{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		logger:      logger,
	}, nil
}

func (c *GeminiConnector) SuggestDestinations(ctx context.Context, req *entity.SuggestDestinationsRequest) (
	*entity.SuggestDestinationsResponse, error,
) {
	prompt, err := RenderSuggestPrompt(req)
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "suggesting destinations via gemini", zap.String("model", c.model))

	var resp entity.SuggestDestinationsResponse
	if err := c.generate(ctx, prompt, suggestSchema, &resp); err != nil {
		return nil, fmt.Errorf("suggest destinations: %w", err)
	}
	if err := checkSuggestions(&resp); err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "destinations suggested", zap.Int("count", len(resp.Destinations)))
	return &resp, nil
}

func (c *GeminiConnector) DescribeDestination(ctx context.Context, req *entity.DestinationBriefRequest) (
	*entity.DestinationBriefResponse, error,
) {
	prompt, err := RenderBriefPrompt(req)
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "describing destination via gemini", zap.String("destination", req.DestinationName))

	var resp entity.DestinationBriefResponse
	if err := c.generate(ctx, prompt, briefSchema, &resp); err != nil {
		return nil, fmt.Errorf("describe destination: %w", err)
	}
	if err := checkBrief(req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *GeminiConnector) generate(ctx context.Context, prompt string, schema *genai.Schema, out any) error {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
		Temperature:      genai.Ptr(c.temperature),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return classifyGenAIError(err)
	}

	return decodeJSON(result.Text(), out)
}

// APIError marks provider errors worth retrying
type APIError struct {
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("model provider error %d: %v", e.StatusCode, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

func classifyGenAIError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &APIError{StatusCode: apiErr.Code, Err: err}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return &APIError{StatusCode: apiErrPtr.Code, Err: err}
	}
	return err
}
