package services

import (
	"context"

	"github.com/rafabene/access-admin/internal/domain/entities"
	"github.com/rafabene/access-admin/internal/domain/repositories"
)

const dashboardUserLimit = 100

// DashboardService monta o contexto das páginas de administração
type DashboardService struct {
	roles    *RoleService
	managers *PermissionManagerService
	userRepo repositories.UserRepository
}

// NewDashboardService cria um novo DashboardService
func NewDashboardService(
	roles *RoleService,
	managers *PermissionManagerService,
	userRepo repositories.UserRepository,
) *DashboardService {
	return &DashboardService{
		roles:    roles,
		managers: managers,
		userRepo: userRepo,
	}
}

// RolesDashboard é o contexto da página de duplicação de roles
type RolesDashboard struct {
	TitleKey string
	Roles    []RoleSummary
}

// ManagerSummary é a linha de um manager no painel
type ManagerSummary struct {
	ID              string `json:"name"`
	ManagerName     string `json:"manager_name"`
	Description     string `json:"description"`
	IsActive        bool   `json:"is_active"`
	ApplyToAllUsers bool   `json:"apply_to_all_users"`
	UserField       string `json:"user_field"`
	PermissionCount int    `json:"permission_count"`
}

// ManagersDashboard é o contexto do painel de managers
type ManagersDashboard struct {
	TitleKey string
	Managers []ManagerSummary
	Stats    *PermissionStatistics
	Users    []*entities.User
}

// RolesContext retorna os roles com as contagens de permissões
func (s *DashboardService) RolesContext(ctx context.Context) (*RolesDashboard, error) {
	roles, err := s.roles.GetAllRolesSummary(ctx)
	if err != nil {
		return nil, err
	}
	return &RolesDashboard{TitleKey: "dashboard.roles.title", Roles: roles}, nil
}

// ManagersContext retorna todos os managers, as estatísticas e os usuários de sistema habilitados
func (s *DashboardService) ManagersContext(ctx context.Context) (*ManagersDashboard, error) {
	managers, err := s.managers.ListManagers(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := s.managers.Statistics(ctx)
	if err != nil {
		return nil, err
	}

	systemUser := entities.UserTypeSystem
	users, err := s.userRepo.List(ctx, repositories.UserFilters{
		UserType:    &systemUser,
		EnabledOnly: true,
		PageSize:    dashboardUserLimit,
	})
	if err != nil {
		return nil, err
	}

	summary := make([]ManagerSummary, 0, len(managers))
	for _, m := range managers {
		summary = append(summary, ManagerSummary{
			ID:              m.ID,
			ManagerName:     m.ManagerName,
			Description:     m.Description,
			IsActive:        m.IsActive,
			ApplyToAllUsers: m.ApplyToAllUsers,
			UserField:       m.UserField,
			PermissionCount: len(m.Details),
		})
	}

	return &ManagersDashboard{
		TitleKey: "dashboard.managers.title",
		Managers: summary,
		Stats:    stats,
		Users:    users,
	}, nil
}
