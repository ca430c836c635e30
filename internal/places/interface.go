package places

//go:generate mockgen -package=mocks -destination=mocks/mock_client.go github.com/meridianhq/meridian/internal/places Client

import "context"

// Client searches a venue provider around a point. Implementations are
// stateless and safe for concurrent use.
type Client interface {
	// Search returns venue facts within radius meters of the center
	Search(ctx context.Context, input *SearchInput) (*SearchOutput, error)
}
