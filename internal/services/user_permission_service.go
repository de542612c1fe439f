package services

import (
	"context"
	"strings"

	"github.com/rafabene/access-admin/internal/domain/entities"
	"github.com/rafabene/access-admin/internal/domain/errors"
	"github.com/rafabene/access-admin/internal/domain/ports"
	"github.com/rafabene/access-admin/internal/domain/repositories"
)

// UserPermissionService gerencia as permissões de usuário criadas manualmente
// e protege as linhas mantidas por um manager ativo.
type UserPermissionService struct {
	permRepo    repositories.UserPermissionRepository
	managerRepo repositories.PermissionManagerRepository
	uow         ports.UnitOfWork
	cache       ports.SummaryCache
	logger      ports.Logger
}

// NewUserPermissionService cria um novo UserPermissionService
func NewUserPermissionService(
	permRepo repositories.UserPermissionRepository,
	managerRepo repositories.PermissionManagerRepository,
	uow ports.UnitOfWork,
	cache ports.SummaryCache,
	logger ports.Logger,
) *UserPermissionService {
	return &UserPermissionService{
		permRepo:    permRepo,
		managerRepo: managerRepo,
		uow:         uow,
		cache:       cache,
		logger:      logger.With("component", "user_permissions"),
	}
}

// UserPermissionInput representa os dados de uma permissão manual
type UserPermissionInput struct {
	User            string `validate:"required,email"`
	Allow           string `validate:"required,max=140"`
	ForValue        string `validate:"required,max=140"`
	ApplicableFor   string `validate:"max=140"`
	ApplyToAll      bool
	IsDefault       bool
	HideDescendants bool
}

// Create grava uma permissão manual (sem vínculo com manager)
func (s *UserPermissionService) Create(ctx context.Context, input UserPermissionInput) (*entities.UserPermission, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	perm := &entities.UserPermission{
		User:            strings.ToLower(strings.TrimSpace(input.User)),
		Allow:           strings.TrimSpace(input.Allow),
		ForValue:        strings.TrimSpace(input.ForValue),
		ApplicableFor:   strings.TrimSpace(input.ApplicableFor),
		ApplyToAll:      input.ApplyToAll,
		IsDefault:       input.IsDefault,
		HideDescendants: input.HideDescendants,
	}
	if err := s.permRepo.Create(ctx, perm); err != nil {
		return nil, err
	}

	s.logger.Info("user permission created", "user", perm.User, "allow", perm.Allow, "for_value", perm.ForValue)
	s.invalidateStatistics(ctx)
	return perm, nil
}

// Delete remove uma permissão manualmente.
// Linhas marcadas com um manager ativo são recusadas com ErrManagedPermission.
func (s *UserPermissionService) Delete(ctx context.Context, id string) error {
	err := s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		perm, err := s.permRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if perm == nil {
			return errors.ErrUserPermissionNotFound
		}

		if perm.IsManaged() {
			manager, err := s.managerRepo.FindByID(ctx, perm.ManagerID)
			if err != nil {
				return err
			}
			if perm.DeletionBlockedBy(manager) {
				s.logger.Warn("blocked deletion of managed permission", "id", id, "manager", manager.ManagerName)
				return errors.WithParams(errors.ErrManagedPermission, map[string]interface{}{
					"Manager": manager.DisplayName(),
				})
			}
		}

		return s.permRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.invalidateStatistics(ctx)
	return nil
}

// ListForUser lista as permissões de um usuário
func (s *UserPermissionService) ListForUser(ctx context.Context, user string) ([]*entities.UserPermission, error) {
	return s.permRepo.ListByUser(ctx, strings.ToLower(strings.TrimSpace(user)))
}

func (s *UserPermissionService) invalidateStatistics(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, ports.CacheKeyPermissionStatistics); err != nil {
		s.logger.Warn("failed to invalidate permission statistics", "error", err)
	}
}
