package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/wanderlust-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

var _ Connector = &MockConnector{}

// MockConnector returns canned destinations for local runs and tests
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

var mockDestinations = map[string][]entity.Destination{
	"Europe": {
		{Name: "Lisbon, Portugal", Description: "Sunny hills, tiled facades and fresh seafood by the Atlantic.", ImageURL: "Golden hour over Lisbon rooftops with a yellow tram"},
		{Name: "Dolomites, Italy", Description: "Jagged peaks, alpine huts and hiking trails for every level.", ImageURL: "Misty sunrise over the jagged Dolomite peaks"},
	},
	"Asia": {
		{Name: "Kyoto, Japan", Description: "Temples, gardens and a calm pace rooted in tradition.", ImageURL: "Red torii gates winding up a forested hill in Kyoto"},
		{Name: "Luang Prabang, Laos", Description: "A slow riverside town of monasteries and night markets.", ImageURL: "Monks in saffron robes crossing a misty Mekong bridge"},
	},
}

var defaultMockDestinations = []entity.Destination{
	{Name: "Cape Town, South Africa", Description: "Ocean, mountains and vineyards within an hour of each other.", ImageURL: "Table Mountain above Cape Town at sunset"},
	{Name: "Queenstown, New Zealand", Description: "Lakeside adventure capital surrounded by alpine scenery.", ImageURL: "Turquoise lake framed by snowy mountains near Queenstown"},
	{Name: "Oaxaca, Mexico", Description: "Colourful streets, rich cuisine and ancient ruins nearby.", ImageURL: "Colourful colonial street in Oaxaca with papel picado"},
}

// SuggestDestinations picks canned destinations by the preferred region
func (m *MockConnector) SuggestDestinations(ctx context.Context, req *entity.SuggestDestinationsRequest) (
	*entity.SuggestDestinationsResponse, error,
) {
	ctxzap.Info(ctx, "[MOCK] suggesting destinations", zap.String("region", req.PreferredRegion))

	var out []entity.Destination
	for _, region := range strings.Split(req.PreferredRegion, ", ") {
		out = append(out, mockDestinations[region]...)
	}
	if len(out) == 0 {
		out = defaultMockDestinations
	}

	return &entity.SuggestDestinationsResponse{
		Destinations: append([]entity.Destination(nil), out...),
	}, nil
}

// DescribeDestination returns a templated one-sentence brief
func (m *MockConnector) DescribeDestination(ctx context.Context, req *entity.DestinationBriefRequest) (
	*entity.DestinationBriefResponse, error,
) {
	ctxzap.Info(ctx, "[MOCK] describing destination", zap.String("destination", req.DestinationName))

	return &entity.DestinationBriefResponse{
		DestinationName: req.DestinationName,
		ImageURL:        req.ImageURL,
		Summary:         fmt.Sprintf("%s is a memorable destination that rewards curious travellers with great views and local flavour.", req.DestinationName),
	}, nil
}
