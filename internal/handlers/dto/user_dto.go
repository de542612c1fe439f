package dto

import (
	"time"

	"github.com/rafabene/access-admin/internal/domain/entities"
	"github.com/rafabene/access-admin/internal/domain/repositories"
	"github.com/rafabene/access-admin/internal/services"
)

// CreateUserRequest representa a requisição para registrar um usuário
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"required,min=1,max=140"`
	UserType string `json:"user_type" binding:"omitempty,oneof='System User' 'Website User'"`
	Disabled bool   `json:"disabled"`
}

// ToInput converte a requisição para o input do serviço
func (r CreateUserRequest) ToInput() services.CreateUserInput {
	return services.CreateUserInput{
		Email:    r.Email,
		FullName: r.FullName,
		UserType: entities.UserType(r.UserType),
		Disabled: r.Disabled,
	}
}

// UpdateUserRequest habilita ou desabilita um usuário
type UpdateUserRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// ListUsersQuery representa os filtros de listagem de usuários
type ListUsersQuery struct {
	UserType    string `form:"user_type" binding:"omitempty,oneof='System User' 'Website User'"`
	EnabledOnly bool   `form:"enabled_only"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// UserResponse representa a resposta de um usuário
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Enabled   bool      `json:"enabled"`
	UserType  string    `json:"user_type"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUserResponse converte uma entidade User para UserResponse
func ToUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email.String(),
		FullName:  user.FullName,
		Enabled:   user.Enabled,
		UserType:  string(user.UserType),
		CreatedAt: user.CreatedAt,
	}
}

// ToUserResponses converte uma lista de entidades User para UserResponse
func ToUserResponses(users []*entities.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = ToUserResponse(user)
	}
	return responses
}

// ToFilters converte a query para os filtros do repositório
func (q ListUsersQuery) ToFilters() repositories.UserFilters {
	filters := repositories.UserFilters{
		EnabledOnly: q.EnabledOnly,
		Page:        q.Page,
		PageSize:    q.PageSize,
	}
	if q.UserType != "" {
		userType := entities.UserType(q.UserType)
		filters.UserType = &userType
	}
	return filters
}
