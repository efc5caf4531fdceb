package identity

import (
	"context"
	"fmt"

	"cargo-platform-go/internal/apperr"
	"cargo-platform-go/internal/domain"
	"cargo-platform-go/internal/logx"
)

// Gate is the read-only view of identity facts used by the workflow services.
type Gate struct {
	reader Reader
	logger logx.Logger
}

// NewGate creates a Gate over reader.
func NewGate(reader Reader, logger logx.Logger) *Gate {
	logger = logx.OrNop(logger)
	return &Gate{reader: reader, logger: logger}
}

// IsDriverVerified reports whether userID is a verified driver. Unknown users are not verified.
func (g *Gate) IsDriverVerified(ctx context.Context, userID int64) (bool, error) {
	if userID <= 0 {
		return false, nil
	}
	ok, err := g.reader.IsDriverVerified(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("check driver %d: %w", userID, err)
	}
	if !ok {
		g.logger.Debug("driver not verified", logx.Int64("user_id", userID))
	}
	return ok, nil
}

// IsOwnerDispatcherVerified reports whether userID is a verified account with the given role.
func (g *Gate) IsOwnerDispatcherVerified(ctx context.Context, userID int64, role domain.Role) (bool, error) {
	if !role.Valid() {
		return false, apperr.Invalidf("unknown role %q", role)
	}
	if userID <= 0 {
		return false, nil
	}
	ok, err := g.reader.IsOwnerDispatcherVerified(ctx, userID, role)
	if err != nil {
		return false, fmt.Errorf("check %s %d: %w", role, userID, err)
	}
	if !ok {
		g.logger.Debug("owner-dispatcher not verified",
			logx.Int64("user_id", userID),
			logx.String("role", string(role)),
		)
	}
	return ok, nil
}
