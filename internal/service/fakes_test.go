package service

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/homegrid/community-service/internal/domain"
)

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: map[string]domain.User{}}
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) || u.Username == user.Username {
			return domain.ErrConflict
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryUserRepo) FindCredentialByIdentifier(ctx context.Context, identifier string) (*domain.Credential, error) {
	u, err := r.GetByEmail(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return &domain.Credential{PrincipalID: u.ID, PasswordHash: u.PasswordHash, Status: u.Status}, nil
}

// memoryTokenRepo mirrors the conditional UPDATE of the Postgres repository:
// the check and the mark happen under one lock.
type memoryTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*domain.OneTimeToken
	seq    int
}

func newMemoryTokenRepo() *memoryTokenRepo {
	return &memoryTokenRepo{tokens: map[string]*domain.OneTimeToken{}}
}

func (r *memoryTokenRepo) Create(_ context.Context, token *domain.OneTimeToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	token.ID = strconv.Itoa(r.seq)
	token.CreatedAt = time.Now()
	stored := *token
	r.tokens[token.Token] = &stored
	return nil
}

func (r *memoryTokenRepo) Consume(_ context.Context, tokenStr string, tokenType domain.OneTimeTokenType, now time.Time) (*domain.OneTimeToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[tokenStr]
	if !ok || token.Type != tokenType || !token.Redeemable(now) {
		return nil, domain.ErrNotFound
	}
	token.Used = true
	out := *token
	return &out, nil
}

func (r *memoryTokenRepo) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k, token := range r.tokens {
		if token.Used || !token.ExpiresAt.After(before) {
			delete(r.tokens, k)
			n++
		}
	}
	return n, nil
}

type memoryCommunityRepo struct {
	mu          sync.Mutex
	communities map[string]domain.Community
	admins      map[string][]string
	amenities   []domain.Amenity
	users       map[string]bool
}

func newMemoryCommunityRepo(knownUsers ...string) *memoryCommunityRepo {
	users := map[string]bool{}
	for _, u := range knownUsers {
		users[u] = true
	}
	return &memoryCommunityRepo{communities: map[string]domain.Community{}, admins: map[string][]string{}, users: users}
}

func (r *memoryCommunityRepo) Create(_ context.Context, community *domain.Community, creatorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	community.ID = uuid.NewString()
	r.communities[community.ID] = *community
	r.admins[community.ID] = []string{creatorID}
	return nil
}

func (r *memoryCommunityRepo) GetByID(_ context.Context, id string) (*domain.Community, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.communities[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *memoryCommunityRepo) AddAdmin(_ context.Context, communityID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.users[userID] {
		return domain.ErrNotFound
	}
	r.admins[communityID] = append(r.admins[communityID], userID)
	return nil
}

func (r *memoryCommunityRepo) ListAdminPrincipalIDs(_ context.Context, communityID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.admins[communityID]...), nil
}

func (r *memoryCommunityRepo) AddAmenity(_ context.Context, amenity *domain.Amenity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	amenity.ID = uuid.NewString()
	r.amenities = append(r.amenities, *amenity)
	return nil
}
