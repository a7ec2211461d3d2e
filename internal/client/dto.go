// AngelaMos | 2026
// dto.go

package client

import "time"

type RegisterRequest struct {
	FullName string `json:"fullName" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Age      int    `json:"age" validate:"required,gte=18,lte=120"`
	Country  string `json:"country" validate:"required,max=100"`
}

type UpdateRequest struct {
	FullName *string `json:"fullName" validate:"omitempty,min=2,max=255"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Age      *int    `json:"age" validate:"omitempty,gte=18,lte=120"`
	Country  *string `json:"country" validate:"omitempty,max=100"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72"`
}

// Profile is the client payload returned to callers. Password hashes and
// one-time codes never leave the service layer.
type Profile struct {
	ID         string    `json:"id"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email"`
	Age        int       `json:"age"`
	Country    string    `json:"country"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func NewProfile(c *Client) Profile {
	return Profile{
		ID:         c.ID,
		FullName:   c.FullName,
		Email:      c.Email,
		Age:        c.Age,
		Country:    c.Country,
		Role:       c.Role,
		IsVerified: c.IsVerified,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
