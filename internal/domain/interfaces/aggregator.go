package interfaces

import (
	"context"

	domaintypes "ethdk/internal/domain/types"
)

// AggregatorClient submits signed bundles to an aggregator.
type AggregatorClient interface {
	AddBundle(ctx context.Context, bundle domaintypes.Bundle) (domaintypes.AddBundleResponse, error)
}
