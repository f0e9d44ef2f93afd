package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/homegrid/community-service/internal/domain"
)

// CommunityRepository handles communities, their admins and amenities.
type CommunityRepository interface {
	Create(ctx context.Context, community *domain.Community, creatorID string) error
	GetByID(ctx context.Context, id string) (*domain.Community, error)
	AddAdmin(ctx context.Context, communityID, userID string) error
	ListAdminPrincipalIDs(ctx context.Context, communityID string) ([]string, error)
	AddAmenity(ctx context.Context, amenity *domain.Amenity) error
}

type communityRepository struct {
	pool *pgxpool.Pool
}

// NewCommunityRepository instantiates the repository.
func NewCommunityRepository(pool *pgxpool.Pool) CommunityRepository {
	return &communityRepository{pool: pool}
}

// Create inserts the community and registers creatorID as its first admin in
// one transaction.
func (r *communityRepository) Create(ctx context.Context, community *domain.Community, creatorID string) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		const insertCommunity = `
            INSERT INTO communities (name, address)
            VALUES ($1,$2)
            RETURNING id, created_at, updated_at`
		if err := tx.QueryRow(ctx, insertCommunity, community.Name, community.Address).
			Scan(&community.ID, &community.CreatedAt, &community.UpdatedAt); err != nil {
			return translate(err)
		}

		const insertAdmin = `INSERT INTO community_admins (community_id, user_id) VALUES ($1,$2)`
		_, err := tx.Exec(ctx, insertAdmin, community.ID, creatorID)
		return translate(err)
	})
}

func (r *communityRepository) GetByID(ctx context.Context, id string) (*domain.Community, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	const query = `
        SELECT id, name, address, created_at, updated_at
        FROM communities WHERE id=$1`

	var community domain.Community
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&community.ID,
		&community.Name,
		&community.Address,
		&community.CreatedAt,
		&community.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &community, nil
}

func (r *communityRepository) AddAdmin(ctx context.Context, communityID, userID string) error {
	const query = `
        INSERT INTO community_admins (community_id, user_id)
        VALUES ($1,$2)
        ON CONFLICT DO NOTHING`
	_, err := r.pool.Exec(ctx, query, communityID, userID)
	return translate(err)
}

// ListAdminPrincipalIDs returns an empty set for ids that cannot name a
// community.
func (r *communityRepository) ListAdminPrincipalIDs(ctx context.Context, communityID string) ([]string, error) {
	if _, err := uuid.Parse(communityID); err != nil {
		return []string{}, nil
	}
	const query = `SELECT user_id FROM community_admins WHERE community_id=$1`

	rows, err := r.pool.Query(ctx, query, communityID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (r *communityRepository) AddAmenity(ctx context.Context, amenity *domain.Amenity) error {
	const query = `
        INSERT INTO amenities (community_id, name, description)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		amenity.CommunityID,
		amenity.Name,
		amenity.Description,
	).Scan(&amenity.ID, &amenity.CreatedAt)
	return translate(err)
}
