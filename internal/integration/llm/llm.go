package llm

import (
	"context"

	"github.com/futig/wanderlust-backend/internal/entity"
)

// Flow names used in logs and metrics
const (
	FlowSuggest = "suggest"
	FlowBrief   = "brief"
)

// Connector talks to a generative model provider
type Connector interface {
	SuggestDestinations(ctx context.Context, req *entity.SuggestDestinationsRequest) (*entity.SuggestDestinationsResponse, error)
	DescribeDestination(ctx context.Context, req *entity.DestinationBriefRequest) (*entity.DestinationBriefResponse, error)
}
