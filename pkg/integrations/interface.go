package integrations

import "context"

// AssetFetcher downloads binary assets such as artwork.
type AssetFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, string, error)
}
