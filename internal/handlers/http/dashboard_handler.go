package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/access-admin/internal/handlers/dto"
	"github.com/rafabene/access-admin/internal/services"
)

// DashboardHandler entrega os contextos das páginas administrativas
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler cria um novo DashboardHandler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Roles retorna o contexto da página de duplicação de roles
// @Summary Contexto da página de roles
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.RolesDashboardResponse
// @Router /api/v1/dashboard/roles [get]
func (h *DashboardHandler) Roles(c *gin.Context) {
	dashboard, err := h.dashboardService.RolesContext(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRolesDashboardResponse(c, dashboard))
}

// Managers retorna o contexto do painel de managers
// @Summary Contexto do painel de managers
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.ManagersDashboardResponse
// @Router /api/v1/dashboard/permission-managers [get]
func (h *DashboardHandler) Managers(c *gin.Context) {
	dashboard, err := h.dashboardService.ManagersContext(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToManagersDashboardResponse(c, dashboard))
}
