package dto

import (
	"github.com/gin-gonic/gin"

	"github.com/rafabene/access-admin/internal/services"
)

// RolesDashboardResponse é o contexto da página de duplicação de roles
type RolesDashboardResponse struct {
	Title string                 `json:"title"`
	Roles []services.RoleSummary `json:"roles"`
}

// DashboardUser é um usuário selecionável no painel
type DashboardUser struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
}

// ManagersDashboardResponse é o contexto do painel de managers
type ManagersDashboardResponse struct {
	Title    string                         `json:"title"`
	Managers []services.ManagerSummary      `json:"managers"`
	Stats    *services.PermissionStatistics `json:"stats"`
	Users    []DashboardUser                `json:"users"`
}

// ToRolesDashboardResponse traduz o título e converte o contexto
func ToRolesDashboardResponse(c *gin.Context, d *services.RolesDashboard) RolesDashboardResponse {
	return RolesDashboardResponse{Title: T(c, d.TitleKey), Roles: d.Roles}
}

// ToManagersDashboardResponse traduz o título e converte o contexto
func ToManagersDashboardResponse(c *gin.Context, d *services.ManagersDashboard) ManagersDashboardResponse {
	users := make([]DashboardUser, len(d.Users))
	for i, u := range d.Users {
		users[i] = DashboardUser{Name: u.Email.String(), FullName: u.FullName}
	}
	return ManagersDashboardResponse{
		Title:    T(c, d.TitleKey),
		Managers: d.Managers,
		Stats:    d.Stats,
		Users:    users,
	}
}
