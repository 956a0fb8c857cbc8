package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/futig/wanderlust-backend/internal/config"
	"github.com/futig/wanderlust-backend/internal/entity"
	pkghttp "github.com/futig/wanderlust-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const userAgent = "wanderlust-backend"

// gatewayRequest is the payload sent to a model gateway: the rendered prompt and its structured input
type gatewayRequest struct {
	Prompt string `json:"prompt"`
	Input  any    `json:"input"`
}

var _ Connector = &HTTPConnector{}

// HTTPConnector calls a model gateway service over HTTP
type HTTPConnector struct {
	config    config.LLMConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewHTTPConnector(
	cfg config.LLMConfig,
	logger *zap.Logger,
) *HTTPConnector {
	return &HTTPConnector{
		connector: newGatewayConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

func newGatewayConnector(cfg config.HTTPClientConfig, logger *zap.Logger) *pkghttp.Connector {
	return pkghttp.NewConnector(
		&pkghttp.ConnectorConfig{Logger: logger, BaseURL: cfg.Url},
		pkghttp.WithRequestTimeout(cfg.RequestTimeout),
		pkghttp.WithDialTimeout(cfg.ConnTimeout),
		pkghttp.WithKeepAlive(cfg.KeepAlive),
		pkghttp.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkghttp.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkghttp.WithRequestLogging(),
		pkghttp.WithAuthToken(cfg.Token),
		pkghttp.WithUserAgent(userAgent),
	)
}

// SuggestDestinations asks the gateway for destinations matching the preferences
func (c *HTTPConnector) SuggestDestinations(ctx context.Context, req *entity.SuggestDestinationsRequest) (
	*entity.SuggestDestinationsResponse, error,
) {
	prompt, err := RenderSuggestPrompt(req)
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "suggesting destinations via model gateway")

	var resp entity.SuggestDestinationsResponse
	err = c.connector.DoRequest(ctx, http.MethodPost, c.config.Suggest, &gatewayRequest{Prompt: prompt, Input: req}, &resp)
	if err != nil {
		return nil, fmt.Errorf("suggest destinations failed: %w", err)
	}

	if err := checkSuggestions(&resp); err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "destinations suggested", zap.Int("count", len(resp.Destinations)))

	return &resp, nil
}

// DescribeDestination asks the gateway for a one-sentence brief
func (c *HTTPConnector) DescribeDestination(ctx context.Context, req *entity.DestinationBriefRequest) (
	*entity.DestinationBriefResponse, error,
) {
	prompt, err := RenderBriefPrompt(req)
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "describing destination via model gateway", zap.String("destination", req.DestinationName))

	var resp entity.DestinationBriefResponse
	err = c.connector.DoRequest(ctx, http.MethodPost, c.config.Brief, &gatewayRequest{Prompt: prompt, Input: req}, &resp)
	if err != nil {
		return nil, fmt.Errorf("describe destination failed: %w", err)
	}

	if err := checkBrief(req, &resp); err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "destination described", zap.Int("summary_length", len(resp.Summary)))

	return &resp, nil
}
