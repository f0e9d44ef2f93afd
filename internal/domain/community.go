package domain

import "time"

// Community groups houses managed by a set of admins.
type Community struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CommunityAdmin links a user to a community they administer.
type CommunityAdmin struct {
	CommunityID string
	UserID      string
	CreatedAt   time.Time
}

// Amenity is a shared facility of a community.
type Amenity struct {
	ID          string
	CommunityID string
	Name        string
	Description string
	CreatedAt   time.Time
}
