package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/access-admin/internal/handlers/dto"
	"github.com/rafabene/access-admin/internal/services"
)

// UserPermissionHandler expõe as permissões de usuário avulsas
type UserPermissionHandler struct {
	permService *services.UserPermissionService
}

// NewUserPermissionHandler cria um novo UserPermissionHandler
func NewUserPermissionHandler(permService *services.UserPermissionService) *UserPermissionHandler {
	return &UserPermissionHandler{permService: permService}
}

// CreateUserPermission grava uma permissão manual
// @Summary Cria uma permissão de usuário manual
// @Tags user-permissions
// @Accept json
// @Produce json
// @Param request body dto.UserPermissionRequest true "Permissão"
// @Success 201 {object} dto.UserPermissionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/user-permissions [post]
func (h *UserPermissionHandler) CreateUserPermission(c *gin.Context) {
	var req dto.UserPermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.AbortWithProblem(c, dto.BindingErrorResponse(c, err))
		return
	}

	perm, err := h.permService.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserPermissionResponse(perm, nil))
}

// DeleteUserPermission exclui uma permissão; linhas de um manager ativo são recusadas
// @Summary Exclui uma permissão de usuário
// @Tags user-permissions
// @Produce json
// @Param id path string true "ID da permissão"
// @Success 200 {object} dto.ResultResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/user-permissions/{id} [delete]
func (h *UserPermissionHandler) DeleteUserPermission(c *gin.Context) {
	if err := h.permService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ResultResponse{
		Success: true,
		Message: dto.T(c, "user_permission.deleted"),
	})
}
