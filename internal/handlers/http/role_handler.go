package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/access-admin/internal/handlers/dto"
	"github.com/rafabene/access-admin/internal/services"
)

// RoleHandler expõe a duplicação de roles
type RoleHandler struct {
	roleService *services.RoleService
}

// NewRoleHandler cria um novo RoleHandler
func NewRoleHandler(roleService *services.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// DuplicateRole duplica um role e, opcionalmente, suas permissões
// @Summary Duplica um role
// @Description Cria um novo role copiando os campos do role de origem. Linhas de permissão da mesma entidade são combinadas com OU lógico.
// @Tags roles
// @Accept json
// @Produce json
// @Param request body dto.DuplicateRoleRequest true "Role de origem e novo nome"
// @Success 201 {object} dto.DuplicateRoleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /api/v1/roles/duplicate [post]
func (h *RoleHandler) DuplicateRole(c *gin.Context) {
	var req dto.DuplicateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.AbortWithProblem(c, dto.BindingErrorResponse(c, err))
		return
	}

	result, err := h.roleService.DuplicateRole(c.Request.Context(), req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDuplicateRoleResponse(c, result))
}

// BulkDuplicateRoles duplica vários roles; falhas não interrompem o lote
// @Summary Duplica vários roles
// @Tags roles
// @Accept json
// @Produce json
// @Param request body dto.BulkDuplicateRequest true "Lista de duplicações"
// @Success 200 {object} dto.BulkDuplicateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/roles/bulk-duplicate [post]
func (h *RoleHandler) BulkDuplicateRoles(c *gin.Context) {
	var req dto.BulkDuplicateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.AbortWithProblem(c, dto.BindingErrorResponse(c, err))
		return
	}

	inputs := make([]services.DuplicateRoleInput, len(req.Roles))
	for i, r := range req.Roles {
		inputs[i] = r.ToInput()
	}

	results := h.roleService.BulkDuplicateRoles(c.Request.Context(), inputs)
	c.JSON(http.StatusOK, dto.ToBulkDuplicateResponse(c, results))
}

// GetAllRolesSummary lista os roles com a contagem de permissões
// @Summary Resumo de todos os roles
// @Tags roles
// @Produce json
// @Success 200 {array} services.RoleSummary
// @Router /api/v1/roles [get]
func (h *RoleHandler) GetAllRolesSummary(c *gin.Context) {
	summary, err := h.roleService.GetAllRolesSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetRoleDetails retorna um role e suas permissões
// @Summary Detalhes de um role
// @Tags roles
// @Produce json
// @Param name path string true "Nome do role"
// @Success 200 {object} dto.RoleDetailsResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/roles/{name} [get]
func (h *RoleHandler) GetRoleDetails(c *gin.Context) {
	details, err := h.roleService.GetRoleDetails(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRoleDetailsResponse(details))
}

// PreviewRolePermissions mostra as permissões combinadas que uma duplicação criaria
// @Summary Pré-visualiza as permissões combinadas
// @Tags roles
// @Produce json
// @Param name path string true "Nome do role"
// @Success 200 {array} dto.MergedPermissionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/roles/{name}/preview [get]
func (h *RoleHandler) PreviewRolePermissions(c *gin.Context) {
	merged, err := h.roleService.PreviewRolePermissions(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMergedPermissionResponses(merged))
}
