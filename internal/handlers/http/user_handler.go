package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/access-admin/internal/handlers/dto"
	"github.com/rafabene/access-admin/internal/services"
)

// UserHandler lida com requisições HTTP relacionadas a usuários
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler cria um novo UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// CreateUser registra um novo usuário
// @Summary Registra um usuário
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "Dados do usuário"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/v1/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.AbortWithProblem(c, dto.BindingErrorResponse(c, err))
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// GetUser busca um usuário por ID ou email
// @Summary Busca um usuário
// @Tags users
// @Produce json
// @Param user path string true "ID ou email do usuário"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/users/{user} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), c.Param("user"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// UpdateUser habilita ou desabilita um usuário
// @Summary Habilita ou desabilita um usuário
// @Tags users
// @Accept json
// @Produce json
// @Param user path string true "ID ou email do usuário"
// @Param request body dto.UpdateUserRequest true "Novo estado"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/users/{user} [patch]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.AbortWithProblem(c, dto.BindingErrorResponse(c, err))
		return
	}

	user, err := h.userService.SetUserEnabled(c.Request.Context(), c.Param("user"), *req.Enabled)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// ListUsers lista usuários com paginação e filtros
// @Summary Lista usuários
// @Tags users
// @Produce json
// @Param user_type query string false "System User ou Website User"
// @Param enabled_only query bool false "Somente habilitados"
// @Param page query int false "Página"
// @Param page_size query int false "Itens por página"
// @Success 200 {array} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	var query dto.ListUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		dto.AbortWithProblem(c, dto.BindingErrorResponse(c, err))
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), query.ToFilters())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponses(users))
}
