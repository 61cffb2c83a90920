package dto

import "github.com/arjn/careermatch/internal/app/models"

// UpdateAccountRequest represents partial account updates
type UpdateAccountRequest struct {
	Username *string `json:"username"`
}

// AvatarUploadResponse returns the publicly resolvable URL of the new avatar
type AvatarUploadResponse struct {
	AvatarURL string `json:"avatarUrl"`
}

// UserListQuery filters the admin user listing
type UserListQuery struct {
	Role     string `form:"role"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize,default=10" binding:"omitempty,min=1,max=100"`
}

// UserListResponse is a paged collection of accounts
type UserListResponse struct {
	Users    []UserResponse `json:"users"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

// VerifyHostResponse reports the new verification state of a host
type VerifyHostResponse struct {
	UserID   string `json:"userId"`
	Verified bool   `json:"verified"`
}

// NewUserResponse maps a user model to its API shape
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Username:      u.Username,
		Role:          u.Role,
		AvatarURL:     u.AvatarURL,
		EmailVerified: u.EmailVerified,
	}
}
