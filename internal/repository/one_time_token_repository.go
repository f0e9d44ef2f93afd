package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/homegrid/community-service/internal/domain"
)

// OneTimeTokenRepository manages single-use token persistence.
type OneTimeTokenRepository interface {
	Create(ctx context.Context, token *domain.OneTimeToken) error
	// Consume atomically marks an unused, unexpired token of the given type as
	// used and returns it. It returns domain.ErrNotFound otherwise.
	Consume(ctx context.Context, token string, tokenType domain.OneTimeTokenType, now time.Time) (*domain.OneTimeToken, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type oneTimeTokenRepository struct {
	pool *pgxpool.Pool
}

// NewOneTimeTokenRepository constructs repository.
func NewOneTimeTokenRepository(pool *pgxpool.Pool) OneTimeTokenRepository {
	return &oneTimeTokenRepository{pool: pool}
}

func (r *oneTimeTokenRepository) Create(ctx context.Context, token *domain.OneTimeToken) error {
	const query = `
        INSERT INTO one_time_tokens (token, type, owner_id, expires_at)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		token.Token,
		token.Type,
		token.OwnerID,
		token.ExpiresAt,
	).Scan(&token.ID, &token.CreatedAt)
	return translate(err)
}

func (r *oneTimeTokenRepository) Consume(ctx context.Context, tokenStr string, tokenType domain.OneTimeTokenType, now time.Time) (*domain.OneTimeToken, error) {
	// The used=FALSE predicate makes concurrent redemptions race on the row
	// lock; only the first UPDATE matches.
	const query = `
        UPDATE one_time_tokens SET used=TRUE
        WHERE token=$1 AND type=$2 AND used=FALSE AND expires_at > $3
        RETURNING id, token, type, owner_id, created_at, expires_at, used`
	var token domain.OneTimeToken
	if err := r.pool.QueryRow(ctx, query, tokenStr, tokenType, now).Scan(
		&token.ID,
		&token.Token,
		&token.Type,
		&token.OwnerID,
		&token.CreatedAt,
		&token.ExpiresAt,
		&token.Used,
	); err != nil {
		return nil, translate(err)
	}
	return &token, nil
}

func (r *oneTimeTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	const query = `DELETE FROM one_time_tokens WHERE expires_at <= $1 OR used=TRUE`
	cmd, err := r.pool.Exec(ctx, query, before)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
