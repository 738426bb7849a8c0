package handler

import (
	"time"

	"github.com/99minutos/user-service/internal/core/domain"
	"github.com/99minutos/user-service/internal/core/ports"
)

// errorResponse documents the envelope rendered by the central error handler.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// --- Request types ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type countryRequest struct {
	Name string `json:"name" validate:"required"`
	CCA2 string `json:"cca2" validate:"required,len=2,lowercase"`
}

func (r *countryRequest) toDomain() *domain.Country {
	if r == nil {
		return nil
	}
	return &domain.Country{Name: r.Name, CCA2: r.CCA2}
}

type createUserRequest struct {
	Email    string          `json:"email"     validate:"required,email"`
	Name     string          `json:"name"      validate:"required"`
	Password string          `json:"password"  validate:"required,min=6,max=72"`
	Role     string          `json:"role"      validate:"omitempty,oneof=user admin super_admin"`
	Country  *countryRequest `json:"country"   validate:"required"`
	Avatar   string          `json:"avatar"`
	IsActive *bool           `json:"is_active"`
}

type updateUserRequest struct {
	Email    *string         `json:"email"     validate:"omitempty,email"`
	Name     *string         `json:"name"      validate:"omitempty,min=1"`
	Role     *string         `json:"role"      validate:"omitempty,oneof=user admin super_admin"`
	Country  *countryRequest `json:"country"   validate:"omitempty"`
	Avatar   *string         `json:"avatar"    validate:"omitempty,min=1"`
	IsActive *bool           `json:"is_active"`
}

func (r *updateUserRequest) toInput() ports.UpdateUserInput {
	in := ports.UpdateUserInput{
		Email:    r.Email,
		Name:     r.Name,
		Country:  r.Country.toDomain(),
		Avatar:   r.Avatar,
		IsActive: r.IsActive,
	}
	if r.Role != nil {
		role := domain.Role(*r.Role)
		in.Role = &role
	}
	return in
}

type updatePasswordRequest struct {
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// --- Response types ---

type sessionResponse struct {
	Token string `json:"token"`
	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn int64            `json:"expires_in"`
	User      *domain.User     `json:"user"`
	Menu      []domain.NavItem `json:"menu,omitempty"`
}

func newSessionResponse(s *ports.Session) sessionResponse {
	return sessionResponse{
		Token:     s.Token,
		ExpiresIn: int64(s.ExpiresIn / time.Second),
		User:      s.User,
		Menu:      s.Menu,
	}
}

type userResponse struct {
	User *domain.User `json:"user"`
}

type userPageResponse struct {
	Page      int            `json:"page"`
	PerPage   int            `json:"per_page"`
	Total     int64          `json:"total"`
	PageTotal int64          `json:"page_total"`
	Users     []*domain.User `json:"users"`
}

func newUserPageResponse(p *ports.UserPage) userPageResponse {
	return userPageResponse{
		Page:      p.Page,
		PerPage:   p.PerPage,
		Total:     p.Total,
		PageTotal: p.PageTotal,
		Users:     p.Users,
	}
}

type emailExistsResponse struct {
	Exists bool `json:"exists"`
}

type avatarResponse struct {
	FileName string `json:"file_name"`
	OK       bool   `json:"ok"`
}
