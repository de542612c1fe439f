package dto

import (
	"time"

	"github.com/rafabene/access-admin/internal/domain/entities"
	"github.com/rafabene/access-admin/internal/domain/repositories"
	"github.com/rafabene/access-admin/internal/services"
)

// PermissionDetailRequest representa um detalhe do manager
type PermissionDetailRequest struct {
	Allow              string `json:"allow" binding:"required,max=140"`
	ForValue           string `json:"for_value" binding:"required,max=140"`
	ApplicableFor      string `json:"applicable_for" binding:"max=140"`
	ApplyToAllDocTypes bool   `json:"apply_to_all_doctypes"`
	IsDefault          bool   `json:"is_default"`
	HideDescendants    bool   `json:"hide_descendants"`
}

// ManagerRequest representa a criação ou atualização de um manager
type ManagerRequest struct {
	ManagerName     string                    `json:"manager_name" binding:"required,max=140"`
	AliasName       string                    `json:"alias_name" binding:"max=140"`
	Description     string                    `json:"description"`
	UserField       string                    `json:"user_field" binding:"omitempty,email"`
	ApplyToAllUsers bool                      `json:"apply_to_all_users"`
	IsActive        *bool                     `json:"is_active"`
	Details         []PermissionDetailRequest `json:"user_permission_details" binding:"dive"`
}

// ToInput converte a requisição; is_active omitido vale verdadeiro
func (r ManagerRequest) ToInput() services.ManagerInput {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}

	details := make([]services.PermissionDetailInput, len(r.Details))
	for i, d := range r.Details {
		details[i] = services.PermissionDetailInput{
			Allow:              d.Allow,
			ForValue:           d.ForValue,
			ApplicableFor:      d.ApplicableFor,
			ApplyToAllDocTypes: d.ApplyToAllDocTypes,
			IsDefault:          d.IsDefault,
			HideDescendants:    d.HideDescendants,
		}
	}

	return services.ManagerInput{
		ManagerName:     r.ManagerName,
		AliasName:       r.AliasName,
		Description:     r.Description,
		UserField:       r.UserField,
		ApplyToAllUsers: r.ApplyToAllUsers,
		IsActive:        active,
		Details:         details,
	}
}

// ApplyUserRequest identifica o usuário alvo de uma aplicação ou remoção
type ApplyUserRequest struct {
	User string `json:"user" binding:"required,email"`
}

// BulkApplyRequest lista os usuários de uma aplicação em lote
type BulkApplyRequest struct {
	Users []string `json:"users" binding:"required,min=1,dive,email"`
}

// PermissionDetailResponse representa um detalhe do manager
type PermissionDetailResponse struct {
	Idx                int    `json:"idx"`
	Allow              string `json:"allow"`
	ForValue           string `json:"for_value"`
	ApplicableFor      string `json:"applicable_for,omitempty"`
	ApplyToAllDocTypes bool   `json:"apply_to_all_doctypes"`
	IsDefault          bool   `json:"is_default"`
	HideDescendants    bool   `json:"hide_descendants"`
}

// ManagerResponse representa um manager
type ManagerResponse struct {
	ID              string                     `json:"name"`
	ManagerName     string                     `json:"manager_name"`
	AliasName       string                     `json:"alias_name,omitempty"`
	Description     string                     `json:"description"`
	UserField       string                     `json:"user_field"`
	ApplyToAllUsers bool                       `json:"apply_to_all_users"`
	IsActive        bool                       `json:"is_active"`
	Details         []PermissionDetailResponse `json:"user_permission_details"`
	CreatedAt       time.Time                  `json:"created_at"`
	UpdatedAt       time.Time                  `json:"updated_at"`
}

// SaveManagerResponse é o resultado de gravar um manager
type SaveManagerResponse struct {
	Manager          ManagerResponse `json:"manager"`
	Synced           bool            `json:"synced"`
	MissingRecreated int             `json:"missing_recreated"`
	Message          string          `json:"message,omitempty"`
}

// UserResultResponse é o resultado da aplicação para um usuário
type UserResultResponse struct {
	User    string `json:"user"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// BulkApplyResponse agrupa os resultados da aplicação em lote
type BulkApplyResponse struct {
	Results []UserResultResponse `json:"results"`
}

// RemoveUserResponse é o resultado da remoção de um manager de um usuário
type RemoveUserResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	DeletedCount int64  `json:"deleted_count"`
}

// MissingResponse é o resultado da verificação de permissões ausentes
type MissingResponse struct {
	Success      bool   `json:"success"`
	MissingCount int    `json:"missing_count"`
	Message      string `json:"message"`
}

// ManagerResultResponse é o resultado da sincronização de um manager
type ManagerResultResponse struct {
	Manager string `json:"manager"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SyncAllResponse agrupa os resultados da sincronização geral
type SyncAllResponse struct {
	Results       []ManagerResultResponse `json:"results"`
	TotalManagers int                     `json:"total_managers"`
	SuccessCount  int                     `json:"success_count"`
}

// ManagerPreviewResponse descreve o que um manager aplicaria
type ManagerPreviewResponse struct {
	ManagerDetails    ManagerPreviewDetails      `json:"manager_details"`
	PermissionDetails []PermissionDetailResponse `json:"permission_details"`
	TargetUsers       []string                   `json:"target_users"`
	TargetUserCount   int                        `json:"target_user_count"`
}

// ManagerPreviewDetails são os campos do manager na pré-visualização
type ManagerPreviewDetails struct {
	ID              string `json:"name"`
	ManagerName     string `json:"manager_name"`
	Description     string `json:"description"`
	IsActive        bool   `json:"is_active"`
	ApplyToAllUsers bool   `json:"apply_to_all_users"`
	UserField       string `json:"user_field"`
}

// UserPermissionRequest representa uma permissão manual
type UserPermissionRequest struct {
	User            string `json:"user" binding:"required,email"`
	Allow           string `json:"allow" binding:"required,max=140"`
	ForValue        string `json:"for_value" binding:"required,max=140"`
	ApplicableFor   string `json:"applicable_for" binding:"max=140"`
	ApplyToAll      bool   `json:"apply_to_all"`
	IsDefault       bool   `json:"is_default"`
	HideDescendants bool   `json:"hide_descendants"`
}

// ToInput converte a requisição para o input do serviço
func (r UserPermissionRequest) ToInput() services.UserPermissionInput {
	return services.UserPermissionInput{
		User:            r.User,
		Allow:           r.Allow,
		ForValue:        r.ForValue,
		ApplicableFor:   r.ApplicableFor,
		ApplyToAll:      r.ApplyToAll,
		IsDefault:       r.IsDefault,
		HideDescendants: r.HideDescendants,
	}
}

// UserPermissionResponse representa uma permissão de usuário
type UserPermissionResponse struct {
	ID                    string `json:"name"`
	User                  string `json:"user"`
	Allow                 string `json:"allow"`
	ForValue              string `json:"for_value"`
	ApplicableFor         string `json:"applicable_for,omitempty"`
	ApplyToAll            bool   `json:"apply_to_all"`
	IsDefault             bool   `json:"is_default"`
	HideDescendants       bool   `json:"hide_descendants"`
	UserPermissionManager string `json:"user_permission_manager,omitempty"`
	ManagerName           string `json:"manager_name,omitempty"`
}

// UserPermissionsSummaryResponse separa as permissões por origem
type UserPermissionsSummaryResponse struct {
	ManagedPermissions []UserPermissionResponse `json:"managed_permissions"`
	ManualPermissions  []UserPermissionResponse `json:"manual_permissions"`
	TotalPermissions   int                      `json:"total_permissions"`
}

// UserManagersResponse lista os managers aplicados a um usuário
type UserManagersResponse struct {
	Managers []repositories.ManagerReference `json:"managers"`
}

func toDetailResponses(details []entities.PermissionDetail) []PermissionDetailResponse {
	responses := make([]PermissionDetailResponse, len(details))
	for i, d := range details {
		responses[i] = PermissionDetailResponse{
			Idx:                d.Idx,
			Allow:              d.Allow,
			ForValue:           d.ForValue,
			ApplicableFor:      d.ApplicableFor,
			ApplyToAllDocTypes: d.ApplyToAllDocTypes,
			IsDefault:          d.IsDefault,
			HideDescendants:    d.HideDescendants,
		}
	}
	return responses
}

// ToManagerResponse converte uma entidade PermissionManager
func ToManagerResponse(m *entities.PermissionManager) ManagerResponse {
	return ManagerResponse{
		ID:              m.ID,
		ManagerName:     m.ManagerName,
		AliasName:       m.AliasName,
		Description:     m.Description,
		UserField:       m.UserField,
		ApplyToAllUsers: m.ApplyToAllUsers,
		IsActive:        m.IsActive,
		Details:         toDetailResponses(m.Details),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// ToManagerResponses converte uma lista de managers
func ToManagerResponses(managers []*entities.PermissionManager) []ManagerResponse {
	responses := make([]ManagerResponse, len(managers))
	for i, m := range managers {
		responses[i] = ToManagerResponse(m)
	}
	return responses
}

// ToManagerPreviewResponse converte a pré-visualização de um manager
func ToManagerPreviewResponse(p *services.ManagerPreview) ManagerPreviewResponse {
	return ManagerPreviewResponse{
		ManagerDetails: ManagerPreviewDetails{
			ID:              p.Manager.ID,
			ManagerName:     p.Manager.ManagerName,
			Description:     p.Manager.Description,
			IsActive:        p.Manager.IsActive,
			ApplyToAllUsers: p.Manager.ApplyToAllUsers,
			UserField:       p.Manager.UserField,
		},
		PermissionDetails: toDetailResponses(p.Manager.Details),
		TargetUsers:       p.TargetUsers,
		TargetUserCount:   len(p.TargetUsers),
	}
}

// ToUserPermissionResponse converte uma permissão; managerNames resolve o nome do manager
func ToUserPermissionResponse(p *entities.UserPermission, managerNames map[string]string) UserPermissionResponse {
	return UserPermissionResponse{
		ID:                    p.ID,
		User:                  p.User,
		Allow:                 p.Allow,
		ForValue:              p.ForValue,
		ApplicableFor:         p.ApplicableFor,
		ApplyToAll:            p.ApplyToAll,
		IsDefault:             p.IsDefault,
		HideDescendants:       p.HideDescendants,
		UserPermissionManager: p.ManagerID,
		ManagerName:           managerNames[p.ManagerID],
	}
}

func toUserPermissionResponses(perms []*entities.UserPermission, managerNames map[string]string) []UserPermissionResponse {
	responses := make([]UserPermissionResponse, len(perms))
	for i, p := range perms {
		responses[i] = ToUserPermissionResponse(p, managerNames)
	}
	return responses
}

// ToUserPermissionsSummaryResponse converte o resumo das permissões do usuário
func ToUserPermissionsSummaryResponse(s *services.UserPermissionsSummary) UserPermissionsSummaryResponse {
	return UserPermissionsSummaryResponse{
		ManagedPermissions: toUserPermissionResponses(s.Managed, s.ManagerNames),
		ManualPermissions:  toUserPermissionResponses(s.Manual, s.ManagerNames),
		TotalPermissions:   s.TotalPermissions,
	}
}
