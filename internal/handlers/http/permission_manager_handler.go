package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/access-admin/internal/domain/repositories"
	"github.com/rafabene/access-admin/internal/handlers/dto"
	"github.com/rafabene/access-admin/internal/services"
)

// PermissionManagerHandler expõe o ciclo de vida e as operações remotas dos managers
type PermissionManagerHandler struct {
	managerService *services.PermissionManagerService
}

// NewPermissionManagerHandler cria um novo PermissionManagerHandler
func NewPermissionManagerHandler(managerService *services.PermissionManagerService) *PermissionManagerHandler {
	return &PermissionManagerHandler{managerService: managerService}
}

// CreateManager cria um manager e sincroniza quando ativo
// @Summary Cria um User Permission Manager
// @Tags permission-managers
// @Accept json
// @Produce json
// @Param request body dto.ManagerRequest true "Manager"
// @Success 201 {object} dto.SaveManagerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /api/v1/permission-managers [post]
func (h *PermissionManagerHandler) CreateManager(c *gin.Context) {
	var req dto.ManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.AbortWithProblem(c, dto.BindingErrorResponse(c, err))
		return
	}

	result, err := h.managerService.CreateManager(c.Request.Context(), req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.saveResponse(c, result))
}

// UpdateManager grava um manager existente; ressincroniza ou recria o que faltar
// @Summary Atualiza um User Permission Manager
// @Tags permission-managers
// @Accept json
// @Produce json
// @Param id path string true "ID ou nome do manager"
// @Param request body dto.ManagerRequest true "Manager"
// @Success 200 {object} dto.SaveManagerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /api/v1/permission-managers/{id} [put]
func (h *PermissionManagerHandler) UpdateManager(c *gin.Context) {
	var req dto.ManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.AbortWithProblem(c, dto.BindingErrorResponse(c, err))
		return
	}

	result, err := h.managerService.UpdateManager(c.Request.Context(), c.Param("id"), req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.saveResponse(c, result))
}

func (h *PermissionManagerHandler) saveResponse(c *gin.Context, result *services.SaveResult) dto.SaveManagerResponse {
	response := dto.SaveManagerResponse{
		Manager:          dto.ToManagerResponse(result.Manager),
		Synced:           result.Synced,
		MissingRecreated: result.MissingRecreated,
	}
	switch {
	case result.Synced:
		response.Message = dto.T(c, "manager.synced")
	case result.MissingRecreated > 0:
		response.Message = dto.T(c, "notice.missing_permissions_recreated", map[string]interface{}{
			"Count": result.MissingRecreated,
		})
	}
	return response
}

// DeleteManager exclui o manager e remove suas linhas de todos os usuários
// @Summary Exclui um User Permission Manager
// @Tags permission-managers
// @Produce json
// @Param id path string true "ID ou nome do manager"
// @Success 200 {object} dto.RemoveUserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/permission-managers/{id} [delete]
func (h *PermissionManagerHandler) DeleteManager(c *gin.Context) {
	manager, removed, err := h.managerService.DeleteManager(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RemoveUserResponse{
		Success:      true,
		Message:      dto.T(c, "manager.deleted", map[string]interface{}{"Manager": manager.DisplayName()}),
		DeletedCount: removed,
	})
}

// GetManager busca um manager por ID ou nome
// @Summary Busca um User Permission Manager
// @Tags permission-managers
// @Produce json
// @Param id path string true "ID ou nome do manager"
// @Success 200 {object} dto.ManagerResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/permission-managers/{id} [get]
func (h *PermissionManagerHandler) GetManager(c *gin.Context) {
	manager, err := h.managerService.GetManager(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToManagerResponse(manager))
}

// AvailableManagers lista os managers ativos
// @Summary Lista os managers ativos
// @Tags permission-managers
// @Produce json
// @Success 200 {array} services.ManagerOverview
// @Router /api/v1/permission-managers [get]
func (h *PermissionManagerHandler) AvailableManagers(c *gin.Context) {
	managers, err := h.managerService.AvailableManagers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, managers)
}

// Preview mostra os detalhes e os usuários alvo do manager
// @Summary Pré-visualiza um manager
// @Tags permission-managers
// @Produce json
// @Param id path string true "ID ou nome do manager"
// @Success 200 {object} dto.ManagerPreviewResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/permission-managers/{id}/preview [get]
func (h *PermissionManagerHandler) Preview(c *gin.Context) {
	preview, err := h.managerService.Preview(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToManagerPreviewResponse(preview))
}

// ApplyToUser aplica o manager a um usuário
// @Summary Aplica o manager a um usuário
// @Tags permission-managers
// @Accept json
// @Produce json
// @Param id path string true "ID ou nome do manager"
// @Param request body dto.ApplyUserRequest true "Usuário"
// @Success 200 {object} dto.ResultResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /api/v1/permission-managers/{id}/apply [post]
func (h *PermissionManagerHandler) ApplyToUser(c *gin.Context) {
	var req dto.ApplyUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.AbortWithProblem(c, dto.BindingErrorResponse(c, err))
		return
	}

	if err := h.managerService.ApplyToUser(c.Request.Context(), c.Param("id"), req.User); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ResultResponse{
		Success: true,
		Message: dto.T(c, "manager.applied", map[string]interface{}{"User": req.User}),
	})
}

// BulkApply aplica o manager a vários usuários
// @Summary Aplica o manager a vários usuários
// @Tags permission-managers
// @Accept json
// @Produce json
// @Param id path string true "ID ou nome do manager"
// @Param request body dto.BulkApplyRequest true "Usuários"
// @Success 200 {object} dto.BulkApplyResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /api/v1/permission-managers/{id}/bulk-apply [post]
func (h *PermissionManagerHandler) BulkApply(c *gin.Context) {
	var req dto.BulkApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.AbortWithProblem(c, dto.BindingErrorResponse(c, err))
		return
	}

	results, err := h.managerService.BulkApply(c.Request.Context(), c.Param("id"), req.Users)
	if err != nil {
		respondError(c, err)
		return
	}

	response := dto.BulkApplyResponse{Results: make([]dto.UserResultResponse, len(results))}
	for i, r := range results {
		item := dto.UserResultResponse{User: r.User, Success: r.Err == nil}
		if r.Err != nil {
			item.Message = dto.ErrorMessage(c, r.Err)
		} else {
			item.Message = dto.T(c, "manager.bulk_applied")
		}
		response.Results[i] = item
	}
	c.JSON(http.StatusOK, response)
}

// RemoveFromUser remove as linhas do manager de um usuário
// @Summary Remove o manager de um usuário
// @Tags permission-managers
// @Accept json
// @Produce json
// @Param id path string true "ID ou nome do manager"
// @Param request body dto.ApplyUserRequest true "Usuário"
// @Success 200 {object} dto.RemoveUserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/permission-managers/{id}/remove-user [post]
func (h *PermissionManagerHandler) RemoveFromUser(c *gin.Context) {
	var req dto.ApplyUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.AbortWithProblem(c, dto.BindingErrorResponse(c, err))
		return
	}

	removed, err := h.managerService.RemoveFromUser(c.Request.Context(), c.Param("id"), req.User)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RemoveUserResponse{
		Success:      true,
		Message:      dto.T(c, "manager.removed_from_user", map[string]interface{}{"Count": removed, "User": req.User}),
		DeletedCount: removed,
	})
}

// CheckMissing conta as permissões ausentes do manager
// @Summary Verifica permissões ausentes
// @Tags permission-managers
// @Produce json
// @Param id path string true "ID ou nome do manager"
// @Success 200 {object} dto.MissingResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/permission-managers/{id}/missing [get]
func (h *PermissionManagerHandler) CheckMissing(c *gin.Context) {
	report, err := h.managerService.CheckMissing(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := dto.MissingResponse{Success: true, MissingCount: report.MissingCount}
	switch {
	case !report.Eligible:
		response.Success = false
		response.Message = dto.T(c, "manager.not_active_or_unassigned")
	case report.MissingCount > 0:
		response.Message = dto.T(c, "manager.missing_found", map[string]interface{}{"Count": report.MissingCount})
	default:
		response.Message = dto.T(c, "manager.no_missing")
	}
	c.JSON(http.StatusOK, response)
}

// RecreateMissing recria as permissões ausentes do manager
// @Summary Recria permissões ausentes
// @Tags permission-managers
// @Produce json
// @Param id path string true "ID ou nome do manager"
// @Success 200 {object} dto.MissingResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/permission-managers/{id}/recreate-missing [post]
func (h *PermissionManagerHandler) RecreateMissing(c *gin.Context) {
	report, err := h.managerService.RecreateMissing(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := dto.MissingResponse{Success: report.Eligible, MissingCount: report.MissingCount}
	if report.Eligible {
		response.Message = dto.T(c, "manager.missing_recreated")
	} else {
		response.Message = dto.T(c, "manager.not_active_or_unassigned")
	}
	c.JSON(http.StatusOK, response)
}

// SyncAll ressincroniza todos os managers ativos
// @Summary Sincroniza todos os managers
// @Tags permission-managers
// @Produce json
// @Success 200 {object} dto.SyncAllResponse
// @Router /api/v1/permission-managers/sync-all [post]
func (h *PermissionManagerHandler) SyncAll(c *gin.Context) {
	results, err := h.managerService.SyncAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := dto.SyncAllResponse{
		Results:       make([]dto.ManagerResultResponse, len(results)),
		TotalManagers: len(results),
	}
	for i, r := range results {
		item := dto.ManagerResultResponse{Manager: r.Manager, Success: r.Err == nil}
		if r.Err != nil {
			item.Message = dto.ErrorMessage(c, r.Err)
		} else {
			item.Message = dto.T(c, "manager.synced")
			response.SuccessCount++
		}
		response.Results[i] = item
	}
	c.JSON(http.StatusOK, response)
}

// Statistics retorna as estatísticas de managers e permissões
// @Summary Estatísticas de permissões
// @Tags permission-managers
// @Produce json
// @Success 200 {object} services.PermissionStatistics
// @Router /api/v1/permission-managers/statistics [get]
func (h *PermissionManagerHandler) Statistics(c *gin.Context) {
	stats, err := h.managerService.Statistics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// UserPermissionsSummary separa as permissões do usuário entre gerenciadas e manuais
// @Summary Permissões de um usuário
// @Tags users
// @Produce json
// @Param user path string true "E-mail do usuário"
// @Success 200 {object} dto.UserPermissionsSummaryResponse
// @Router /api/v1/users/{user}/permissions [get]
func (h *PermissionManagerHandler) UserPermissionsSummary(c *gin.Context) {
	summary, err := h.managerService.UserPermissionsSummary(c.Request.Context(), c.Param("user"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserPermissionsSummaryResponse(summary))
}

// ManagersForUser lista os managers que mantêm linhas para o usuário
// @Summary Managers aplicados a um usuário
// @Tags users
// @Produce json
// @Param user path string true "E-mail do usuário"
// @Success 200 {object} dto.UserManagersResponse
// @Router /api/v1/users/{user}/permission-managers [get]
func (h *PermissionManagerHandler) ManagersForUser(c *gin.Context) {
	managers, err := h.managerService.ManagersForUser(c.Request.Context(), c.Param("user"))
	if err != nil {
		respondError(c, err)
		return
	}
	if managers == nil {
		managers = []repositories.ManagerReference{}
	}
	c.JSON(http.StatusOK, dto.UserManagersResponse{Managers: managers})
}
