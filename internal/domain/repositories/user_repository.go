package repositories

import (
	"context"

	"github.com/rafabene/access-admin/internal/domain/entities"
)

// UserRepository persiste os usuários que recebem permissões
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	// FindByID e FindByEmail retornam nil, nil quando o usuário não existe
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	SetEnabled(ctx context.Context, id string, enabled bool) error
	List(ctx context.Context, filters UserFilters) ([]*entities.User, error)
	// ListGlobalScopeEmails retorna, em ordem, os emails alcançados por managers
	// com apply_to_all_users (usuários de sistema habilitados)
	ListGlobalScopeEmails(ctx context.Context) ([]string, error)
}

// UserFilters contém filtros para listagem de usuários
type UserFilters struct {
	UserType    *entities.UserType
	EnabledOnly bool
	Page        int // começa em 1
	PageSize    int // padrão 20, máximo 100
}
