package dto

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/access-admin/internal/domain/entities"
	"github.com/rafabene/access-admin/internal/services"
)

// DuplicateRoleRequest representa a requisição de duplicação de um role
type DuplicateRoleRequest struct {
	SourceRole  string `json:"source_role" binding:"max=140"`
	NewRoleName string `json:"new_role_name" binding:"max=140"`
	// CopyPermissions é verdadeiro quando omitido
	CopyPermissions *bool `json:"copy_permissions"`
}

// ToInput converte a requisição para o input do serviço
func (r DuplicateRoleRequest) ToInput() services.DuplicateRoleInput {
	copyPerms := true
	if r.CopyPermissions != nil {
		copyPerms = *r.CopyPermissions
	}
	return services.DuplicateRoleInput{
		SourceRole:      r.SourceRole,
		NewRoleName:     r.NewRoleName,
		CopyPermissions: copyPerms,
	}
}

// BulkDuplicateRequest representa a duplicação de vários roles
type BulkDuplicateRequest struct {
	Roles []DuplicateRoleRequest `json:"roles" binding:"required,min=1,dive"`
}

// DuplicateRoleResponse é o resultado de uma duplicação bem-sucedida (mesmo que parcial)
type DuplicateRoleResponse struct {
	Success            bool     `json:"success"`
	Message            string   `json:"message"`
	NewRole            string   `json:"new_role"`
	PermissionsCreated int      `json:"permissions_created"`
	FailedPermissions  []string `json:"failed_permissions"`
	TotalPermissions   int      `json:"total_permissions"`
}

// BulkDuplicateItem é o resultado de um item da duplicação em lote
type BulkDuplicateItem struct {
	SourceRole         string `json:"source_role"`
	NewRoleName        string `json:"new_role_name"`
	Success            bool   `json:"success"`
	Message            string `json:"message"`
	PermissionsCreated int    `json:"permissions_created"`
}

// BulkDuplicateResponse agrupa os resultados da duplicação em lote
type BulkDuplicateResponse struct {
	Results []BulkDuplicateItem `json:"results"`
}

// RoleResponse representa um role
type RoleResponse struct {
	Name             string    `json:"name"`
	Disabled         bool      `json:"disabled"`
	DeskAccess       bool      `json:"desk_access"`
	TwoFactorAuth    bool      `json:"two_factor_auth"`
	RestrictToDomain string    `json:"restrict_to_domain,omitempty"`
	IsCustom         bool      `json:"is_custom"`
	CreatedAt        time.Time `json:"created_at"`
}

// DocPermissionResponse representa uma linha de permissão de um role
type DocPermissionResponse struct {
	Parent    string `json:"parent"`
	PermLevel int    `json:"permlevel"`
	Source    string `json:"source"`
	entities.Capabilities
}

// MergedPermissionResponse representa uma linha combinada da pré-visualização
type MergedPermissionResponse struct {
	Parent     string `json:"parent"`
	PermLevel  int    `json:"permlevel"`
	Source     string `json:"source"`
	SourceRows int    `json:"source_rows"`
	entities.Capabilities
}

// RoleDetailsResponse representa um role com suas permissões
type RoleDetailsResponse struct {
	Role               RoleResponse            `json:"role"`
	DocTypePermissions []DocPermissionResponse `json:"doctype_permissions"`
	CustomPermissions  []DocPermissionResponse `json:"custom_permissions"`
	TotalPermissions   int                     `json:"total_permissions"`
}

// ToRoleResponse converte uma entidade Role
func ToRoleResponse(role *entities.Role) RoleResponse {
	return RoleResponse{
		Name:             role.Name,
		Disabled:         role.Disabled,
		DeskAccess:       role.DeskAccess,
		TwoFactorAuth:    role.TwoFactorAuth,
		RestrictToDomain: role.RestrictToDomain,
		IsCustom:         role.IsCustom,
		CreatedAt:        role.CreatedAt,
	}
}

func toDocPermissionResponses(rows []*entities.DocPermission) []DocPermissionResponse {
	responses := make([]DocPermissionResponse, len(rows))
	for i, row := range rows {
		responses[i] = DocPermissionResponse{
			Parent:       row.Parent,
			PermLevel:    row.PermLevel,
			Source:       string(row.Source),
			Capabilities: row.Capabilities,
		}
	}
	return responses
}

// ToRoleDetailsResponse converte o detalhe de um role
func ToRoleDetailsResponse(details *services.RoleDetails) RoleDetailsResponse {
	return RoleDetailsResponse{
		Role:               ToRoleResponse(details.Role),
		DocTypePermissions: toDocPermissionResponses(details.DocTypePermissions),
		CustomPermissions:  toDocPermissionResponses(details.CustomPermissions),
		TotalPermissions:   details.TotalPermissions,
	}
}

// ToMergedPermissionResponses converte a pré-visualização de um role
func ToMergedPermissionResponses(merged []entities.MergedPermission) []MergedPermissionResponse {
	responses := make([]MergedPermissionResponse, len(merged))
	for i, m := range merged {
		responses[i] = MergedPermissionResponse{
			Parent:       m.Parent,
			PermLevel:    m.PermLevel,
			Source:       string(m.Source),
			SourceRows:   m.SourceRows,
			Capabilities: m.Capabilities,
		}
	}
	return responses
}

// ToDuplicateRoleResponse monta a resposta traduzida de uma duplicação
func ToDuplicateRoleResponse(c *gin.Context, result *services.DuplicationResult) DuplicateRoleResponse {
	failed := result.FailedPermissions
	if failed == nil {
		failed = []string{}
	}
	return DuplicateRoleResponse{
		Success:            true,
		Message:            duplicationMessage(c, result),
		NewRole:            result.NewRole,
		PermissionsCreated: result.PermissionsCreated,
		FailedPermissions:  failed,
		TotalPermissions:   result.TotalPermissions,
	}
}

func duplicationMessage(c *gin.Context, result *services.DuplicationResult) string {
	if result.Partial() {
		return T(c, "role.duplicated_partial", map[string]interface{}{
			"Role":    result.NewRole,
			"Created": result.PermissionsCreated,
			"Failed":  len(result.FailedPermissions),
		})
	}
	return T(c, "role.duplicated", map[string]interface{}{
		"Source": result.SourceRole,
		"Role":   result.NewRole,
	})
}

// ToBulkDuplicateResponse converte os resultados do lote, um item por requisição
func ToBulkDuplicateResponse(c *gin.Context, results []services.BulkDuplicateResult) BulkDuplicateResponse {
	items := make([]BulkDuplicateItem, len(results))
	for i, r := range results {
		item := BulkDuplicateItem{
			SourceRole:  r.Input.SourceRole,
			NewRoleName: r.Input.NewRoleName,
		}
		if r.Err != nil {
			item.Message = ErrorMessage(c, r.Err)
		} else {
			item.Success = true
			item.Message = duplicationMessage(c, r.Result)
			item.PermissionsCreated = r.Result.PermissionsCreated
		}
		items[i] = item
	}
	return BulkDuplicateResponse{Results: items}
}
