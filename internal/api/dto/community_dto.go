package dto

// CreateCommunityRequest payload.
type CreateCommunityRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// AddAdminRequest payload for promoting a user to community admin.
type AddAdminRequest struct {
	UserID string `json:"user_id"`
}

// AddAmenityRequest payload.
type AddAmenityRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CommunityResponse is the public view of a community.
type CommunityResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// AmenityResponse is the public view of an amenity.
type AmenityResponse struct {
	ID          string `json:"id"`
	CommunityID string `json:"community_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
