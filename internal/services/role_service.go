package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rafabene/access-admin/internal/domain/entities"
	"github.com/rafabene/access-admin/internal/domain/errors"
	"github.com/rafabene/access-admin/internal/domain/ports"
	"github.com/rafabene/access-admin/internal/domain/repositories"
)

// RoleService contém a lógica de duplicação e consulta de roles
type RoleService struct {
	roleRepo    repositories.RoleRepository
	permRepo    repositories.DocPermissionRepository
	docTypeRepo repositories.DocTypeRepository
	uow         ports.UnitOfWork
	cache       ports.SummaryCache
	logger      ports.Logger
}

// NewRoleService cria um novo RoleService
func NewRoleService(
	roleRepo repositories.RoleRepository,
	permRepo repositories.DocPermissionRepository,
	docTypeRepo repositories.DocTypeRepository,
	uow ports.UnitOfWork,
	cache ports.SummaryCache,
	logger ports.Logger,
) *RoleService {
	return &RoleService{
		roleRepo:    roleRepo,
		permRepo:    permRepo,
		docTypeRepo: docTypeRepo,
		uow:         uow,
		cache:       cache,
		logger:      logger.With("component", "roles"),
	}
}

// DuplicateRoleInput representa os dados para duplicar um role
type DuplicateRoleInput struct {
	SourceRole      string
	NewRoleName     string
	CopyPermissions bool
}

// DuplicationResult resume uma duplicação concluída
type DuplicationResult struct {
	SourceRole         string
	NewRole            string
	PermissionsCreated int
	// FailedPermissions contém uma linha "<Entidade> - <motivo>" por permissão não criada
	FailedPermissions []string
	TotalPermissions  int
}

// Partial indica se alguma permissão não pôde ser criada
func (r *DuplicationResult) Partial() bool {
	return len(r.FailedPermissions) > 0
}

// RoleDetails agrupa um role e suas linhas de permissão
type RoleDetails struct {
	Role               *entities.Role
	DocTypePermissions []*entities.DocPermission
	CustomPermissions  []*entities.DocPermission
	TotalPermissions   int
}

// RoleSummary é a linha de resumo de um role com suas contagens
type RoleSummary struct {
	Name               string `json:"name"`
	Disabled           bool   `json:"disabled"`
	DeskAccess         bool   `json:"desk_access"`
	TwoFactorAuth      bool   `json:"two_factor_auth"`
	IsCustom           bool   `json:"is_custom"`
	PermissionCount    int64  `json:"permission_count"`
	DocTypePermissions int64  `json:"doctype_permissions"`
	CustomPermissions  int64  `json:"custom_permissions"`
}

// BulkDuplicateResult é o resultado de um item da duplicação em lote
type BulkDuplicateResult struct {
	Input  DuplicateRoleInput
	Result *DuplicationResult
	Err    error
}

// DuplicateRole cria um novo role copiando os campos e, opcionalmente, as permissões do role de origem.
// Falhas por linha são acumuladas no resultado; apenas falhas de pré-condição retornam erro.
func (s *RoleService) DuplicateRole(ctx context.Context, input DuplicateRoleInput) (*DuplicationResult, error) {
	source := strings.TrimSpace(input.SourceRole)
	target := strings.TrimSpace(input.NewRoleName)

	if source == "" || target == "" {
		return nil, errors.ErrRoleNameRequired
	}
	if source == target {
		return nil, errors.ErrSameRoleName
	}

	s.logger.Info("duplicating role", "source", source, "target", target, "copy_permissions", input.CopyPermissions)

	result := &DuplicationResult{SourceRole: source, NewRole: target, FailedPermissions: []string{}}

	err := s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		sourceRole, err := s.roleRepo.FindByName(ctx, source)
		if err != nil {
			return err
		}
		if sourceRole == nil {
			return errors.WithParams(errors.ErrRoleNotFound, map[string]interface{}{"Role": source})
		}

		exists, err := s.roleRepo.Exists(ctx, target)
		if err != nil {
			return err
		}
		if exists {
			return errors.WithParams(errors.ErrRoleAlreadyExists, map[string]interface{}{"Role": target})
		}

		if err := s.roleRepo.Create(ctx, sourceRole.DuplicateAs(target)); err != nil {
			return fmt.Errorf("failed to create role %s: %w", target, err)
		}

		if !input.CopyPermissions {
			return nil
		}

		rows, err := s.permRepo.ListByRole(ctx, source)
		if err != nil {
			return err
		}

		merged := entities.MergePermissions(rows)
		result.TotalPermissions = len(merged)

		for _, m := range merged {
			if reason := s.copyPermission(ctx, target, m); reason != "" {
				result.FailedPermissions = append(result.FailedPermissions, m.Parent+" - "+reason)
				continue
			}
			result.PermissionsCreated++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateSummary(ctx)

	s.logger.Info("role duplicated",
		"source", source,
		"target", target,
		"created", result.PermissionsCreated,
		"failed", len(result.FailedPermissions),
	)
	return result, nil
}

// copyPermission grava uma linha combinada em um savepoint próprio.
// Retorna o motivo da falha, ou vazio em caso de sucesso.
func (s *RoleService) copyPermission(ctx context.Context, role string, m entities.MergedPermission) string {
	exists, err := s.docTypeRepo.Exists(ctx, m.Parent)
	if err != nil {
		s.logger.Error("failed to check entity type", "doctype", m.Parent, "error", err)
		return err.Error()
	}
	if !exists {
		return "entity type not found"
	}

	err = s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		return s.permRepo.Create(ctx, m.ToDocPermission(role))
	})
	if err != nil {
		s.logger.Error("failed to create permission", "role", role, "doctype", m.Parent, "error", err)
		return err.Error()
	}
	return ""
}

// GetRoleDetails retorna o role e suas permissões separadas por origem
func (s *RoleService) GetRoleDetails(ctx context.Context, name string) (*RoleDetails, error) {
	role, err := s.roleRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, errors.WithParams(errors.ErrRoleNotFound, map[string]interface{}{"Role": name})
	}

	rows, err := s.permRepo.ListByRole(ctx, name)
	if err != nil {
		return nil, err
	}

	details := &RoleDetails{
		Role:               role,
		DocTypePermissions: []*entities.DocPermission{},
		CustomPermissions:  []*entities.DocPermission{},
		TotalPermissions:   len(rows),
	}
	for _, row := range rows {
		if row.Source == entities.PermissionSourceCustom {
			details.CustomPermissions = append(details.CustomPermissions, row)
		} else {
			details.DocTypePermissions = append(details.DocTypePermissions, row)
		}
	}
	return details, nil
}

// PreviewRolePermissions retorna as linhas combinadas que uma duplicação criaria, sem gravar nada
func (s *RoleService) PreviewRolePermissions(ctx context.Context, name string) ([]entities.MergedPermission, error) {
	exists, err := s.roleRepo.Exists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.WithParams(errors.ErrRoleNotFound, map[string]interface{}{"Role": name})
	}

	rows, err := s.permRepo.ListByRole(ctx, name)
	if err != nil {
		return nil, err
	}
	return entities.MergePermissions(rows), nil
}

// BulkDuplicateRoles duplica cada item de forma independente; um item com erro não interrompe os demais
func (s *RoleService) BulkDuplicateRoles(ctx context.Context, inputs []DuplicateRoleInput) []BulkDuplicateResult {
	results := make([]BulkDuplicateResult, 0, len(inputs))
	for _, input := range inputs {
		res, err := s.DuplicateRole(ctx, input)
		if err != nil {
			s.logger.Error("bulk duplication item failed",
				"source", input.SourceRole,
				"target", input.NewRoleName,
				"error", err,
			)
		}
		results = append(results, BulkDuplicateResult{Input: input, Result: res, Err: err})
	}
	return results
}

// GetAllRolesSummary lista todos os roles com suas contagens de permissões
func (s *RoleService) GetAllRolesSummary(ctx context.Context) ([]RoleSummary, error) {
	var cached []RoleSummary
	if found, err := s.cache.Get(ctx, ports.CacheKeyRolesSummary, &cached); err != nil {
		s.logger.Warn("roles summary cache read failed", "error", err)
	} else if found {
		return cached, nil
	}

	roles, err := s.roleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.permRepo.CountAllByRole(ctx)
	if err != nil {
		return nil, err
	}

	summary := make([]RoleSummary, 0, len(roles))
	for _, role := range roles {
		c := counts[role.Name]
		summary = append(summary, RoleSummary{
			Name:               role.Name,
			Disabled:           role.Disabled,
			DeskAccess:         role.DeskAccess,
			TwoFactorAuth:      role.TwoFactorAuth,
			IsCustom:           role.IsCustom,
			PermissionCount:    c.Total(),
			DocTypePermissions: c.Standard,
			CustomPermissions:  c.Custom,
		})
	}

	if err := s.cache.Set(ctx, ports.CacheKeyRolesSummary, summary); err != nil {
		s.logger.Warn("roles summary cache write failed", "error", err)
	}
	return summary, nil
}

// ListRoles lista os roles ordenados por nome
func (s *RoleService) ListRoles(ctx context.Context) ([]*entities.Role, error) {
	return s.roleRepo.List(ctx)
}

func (s *RoleService) invalidateSummary(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, ports.CacheKeyRolesSummary); err != nil {
		s.logger.Warn("failed to invalidate roles summary", "error", err)
	}
}
