package competitionbackend

import (
	"context"

	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
)

// Client defines the read-only contract with the competition REST backend.
type Client interface {
	// ListParticipants returns every participant visible to the service account.
	ListParticipants(ctx context.Context) ([]competitiondomain.Participant, error)

	// ListBlocks returns the block catalog with nested score options.
	ListBlocks(ctx context.Context) ([]competitiondomain.Block, error)

	// ListAscensions returns recorded ascensions, optionally for one block.
	ListAscensions(ctx context.Context, blockID *int64) ([]competitiondomain.Ascension, error)

	// ListScoreOptions returns the score options of a block.
	ListScoreOptions(ctx context.Context, blockID int64) ([]competitiondomain.ScoreOption, error)

	// Login checks credentials and returns the backend token and user.
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
}

// LoginResponse is the backend's answer to a successful login.
type LoginResponse struct {
	Token string `json:"token"`
	competitiondomain.Session
}
