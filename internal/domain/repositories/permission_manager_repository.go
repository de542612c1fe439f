package repositories

import (
	"context"

	"github.com/rafabene/access-admin/internal/domain/entities"
)

// PermissionManagerRepository define a interface para persistência dos managers e seus detalhes
type PermissionManagerRepository interface {
	Create(ctx context.Context, manager *entities.PermissionManager) error
	// Update grava o manager e substitui a lista de detalhes
	Update(ctx context.Context, manager *entities.PermissionManager) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entities.PermissionManager, error)
	FindByName(ctx context.Context, name string) (*entities.PermissionManager, error)
	List(ctx context.Context, filters ManagerFilters) ([]*entities.PermissionManager, error)
	Count(ctx context.Context, filters ManagerFilters) (int64, error)
}

// ManagerFilters contém filtros para listagem de managers
type ManagerFilters struct {
	ActiveOnly bool
}

// UserPermissionRepository define a interface para persistência das permissões de usuário
type UserPermissionRepository interface {
	Create(ctx context.Context, perm *entities.UserPermission) error
	Update(ctx context.Context, perm *entities.UserPermission) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entities.UserPermission, error)
	// FindAdoptable busca a linha com a mesma combinação (usuário, tipo, valor, aplicável a)
	// que o manager pode assumir: manual ou já marcada por ele. Linhas de outros managers ficam de fora.
	FindAdoptable(ctx context.Context, managerID, user string, key entities.DetailKey) (*entities.UserPermission, error)
	// ExistsManaged verifica se existe linha do manager para a combinação
	ExistsManaged(ctx context.Context, managerID, user string, key entities.DetailKey) (bool, error)
	ListByUser(ctx context.Context, user string) ([]*entities.UserPermission, error)
	ListByManager(ctx context.Context, managerID string) ([]*entities.UserPermission, error)
	// ListManagedUsers retorna os usuários distintos que possuem linhas do manager
	ListManagedUsers(ctx context.Context, managerID string) ([]string, error)
	// DeleteManaged remove as linhas do manager; user vazio remove de todos os usuários
	DeleteManaged(ctx context.Context, managerID, user string) (int64, error)
	Stats(ctx context.Context, topTypes int) (*UserPermissionStats, error)
	// ManagersForUser retorna os managers distintos aplicados ao usuário
	ManagersForUser(ctx context.Context, user string) ([]ManagerReference, error)
}

// UserPermissionStats agrega contagens das permissões de usuário
type UserPermissionStats struct {
	Total               int64
	Managed             int64
	UsersWithPermission int64
	CommonTypes         []AllowCount
}

// AllowCount conta as linhas por tipo permitido
type AllowCount struct {
	Allow string `json:"allow"`
	Count int64  `json:"count"`
}

// ManagerReference identifica um manager aplicado a um usuário
type ManagerReference struct {
	ManagerID   string `json:"user_permission_manager"`
	ManagerName string `json:"manager_name"`
	Description string `json:"description"`
}
