package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"cargo-platform-go/internal/apperr"
	"cargo-platform-go/internal/domain"
)

const bidColumns = `id, cargo_id, driver_id, proposal, proposed_price, status, created_at, updated_at`

func scanBid(row pgx.Row) (*domain.Bid, error) {
	var b domain.Bid
	if err := row.Scan(&b.ID, &b.CargoID, &b.DriverID, &b.Proposal, &b.ProposedPrice,
		&b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// InsertBid stores a new bid.
func (q *Queries) InsertBid(ctx context.Context, b *domain.Bid) error {
	err := q.q.QueryRow(ctx, `
		INSERT INTO bids (cargo_id, driver_id, proposal, proposed_price, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		b.CargoID, b.DriverID, b.Proposal, b.ProposedPrice, string(b.Status),
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if IsForeignKey(err) {
			return apperr.NotFound("cargo not found")
		}
		return fmt.Errorf("insert bid: %w", err)
	}
	return nil
}

// GetBid returns the bid by id.
func (q *Queries) GetBid(ctx context.Context, id int64) (*domain.Bid, error) {
	b, err := scanBid(q.q.QueryRow(ctx, `SELECT `+bidColumns+` FROM bids WHERE id = $1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bid %d: %w", id, err)
	}
	return b, nil
}

// ListBids returns bids of the cargo ordered by id.
func (q *Queries) ListBids(ctx context.Context, cargoID int64, statuses []domain.BidStatus) ([]domain.Bid, error) {
	var filter []string
	if len(statuses) > 0 {
		filter = make([]string, 0, len(statuses))
		for _, s := range statuses {
			filter = append(filter, string(s))
		}
	}

	rows, err := q.q.Query(ctx, `
		SELECT `+bidColumns+` FROM bids
		WHERE cargo_id = $1 AND ($2::text[] IS NULL OR status = ANY($2))
		ORDER BY id`, cargoID, filter)
	if err != nil {
		return nil, fmt.Errorf("list bids of cargo %d: %w", cargoID, err)
	}
	defer rows.Close()

	out := make([]domain.Bid, 0)
	for rows.Next() {
		b, err := scanBid(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bid: %w", err)
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// UpdateBidStatus changes the bid status. A second accepted bid on a cargo is a conflict.
func (q *Queries) UpdateBidStatus(ctx context.Context, id int64, status domain.BidStatus) error {
	ct, err := q.q.Exec(ctx,
		`UPDATE bids SET status = $2, updated_at = now() WHERE id = $1`, id, string(status))
	if err != nil {
		if IsDuplicate(err) {
			return apperr.Conflict("cargo already has an accepted bid")
		}
		return fmt.Errorf("update bid %d: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFound("bid not found")
	}
	return nil
}
