package handlers

import (
	"time"

	"github.com/yusuufashraaf/TMS-backend/internal/domain"
)

// IdentityDTO is the outward identity shape. The secret hash never leaves
// the persistence boundary.
type IdentityDTO struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewIdentityDTO(identity *domain.Identity) *IdentityDTO {
	return &IdentityDTO{
		ID:          identity.ID.String(),
		DisplayName: identity.DisplayName,
		Email:       identity.Email,
		Role:        string(identity.Role),
		CreatedAt:   identity.CreatedAt,
		UpdatedAt:   identity.UpdatedAt,
	}
}

// ProjectDTO is the outward project shape.
type ProjectDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"createdBy"`
	Members     []string  `json:"members"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewProjectDTO(p *domain.Project) *ProjectDTO {
	members := make([]string, 0, len(p.Members))
	for _, m := range p.Members {
		members = append(members, m.String())
	}
	return &ProjectDTO{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		CreatedBy:   p.CreatedBy.String(),
		Members:     members,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
