package repositories

import (
	"context"

	"github.com/rafabene/access-admin/internal/domain/entities"
)

// RoleRepository define a interface para persistência de roles
type RoleRepository interface {
	Create(ctx context.Context, role *entities.Role) error
	FindByName(ctx context.Context, name string) (*entities.Role, error)
	Exists(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]*entities.Role, error)
}

// DocPermissionRepository define a interface para persistência das linhas de permissão de roles
type DocPermissionRepository interface {
	Create(ctx context.Context, perm *entities.DocPermission) error
	ListByRole(ctx context.Context, role string) ([]*entities.DocPermission, error)
	// CountByRole retorna as contagens de linhas padrão e customizadas de um role
	CountByRole(ctx context.Context, role string) (standard, custom int64, err error)
	// CountAllByRole retorna as contagens de todos os roles em uma única consulta
	CountAllByRole(ctx context.Context) (map[string]PermissionCounts, error)
}

// PermissionCounts agrupa as contagens de linhas de permissão de um role
type PermissionCounts struct {
	Standard int64
	Custom   int64
}

// Total retorna a soma das contagens
func (c PermissionCounts) Total() int64 {
	return c.Standard + c.Custom
}

// DocTypeRepository define a interface para o registro de tipos de entidade
type DocTypeRepository interface {
	Create(ctx context.Context, docType *entities.DocType) error
	Exists(ctx context.Context, name string) (bool, error)
}
