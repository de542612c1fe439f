package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rafabene/access-admin/internal/domain/entities"
	"github.com/rafabene/access-admin/internal/domain/errors"
	"github.com/rafabene/access-admin/internal/domain/ports"
	"github.com/rafabene/access-admin/internal/domain/repositories"
)

// PermissionManagerService reconcilia as permissões de usuário declaradas nos managers
type PermissionManagerService struct {
	managerRepo repositories.PermissionManagerRepository
	permRepo    repositories.UserPermissionRepository
	userRepo    repositories.UserRepository
	uow         ports.UnitOfWork
	cache       ports.SummaryCache
	notifier    ports.Notifier
	logger      ports.Logger
}

// NewPermissionManagerService cria um novo PermissionManagerService
func NewPermissionManagerService(
	managerRepo repositories.PermissionManagerRepository,
	permRepo repositories.UserPermissionRepository,
	userRepo repositories.UserRepository,
	uow ports.UnitOfWork,
	cache ports.SummaryCache,
	notifier ports.Notifier,
	logger ports.Logger,
) *PermissionManagerService {
	return &PermissionManagerService{
		managerRepo: managerRepo,
		permRepo:    permRepo,
		userRepo:    userRepo,
		uow:         uow,
		cache:       cache,
		notifier:    notifier,
		logger:      logger.With("component", "permission_manager"),
	}
}

// PermissionDetailInput representa um detalhe declarado no manager
type PermissionDetailInput struct {
	Allow              string `validate:"required,max=140"`
	ForValue           string `validate:"required,max=140"`
	ApplicableFor      string `validate:"max=140"`
	ApplyToAllDocTypes bool
	IsDefault          bool
	HideDescendants    bool
}

// ManagerInput representa os dados para criar ou atualizar um manager
type ManagerInput struct {
	ManagerName     string `validate:"required,max=140"`
	AliasName       string `validate:"max=140"`
	Description     string
	UserField       string `validate:"omitempty,email"`
	ApplyToAllUsers bool
	IsActive        bool
	Details         []PermissionDetailInput `validate:"dive"`
}

// SaveResult resume o efeito de gravar um manager
type SaveResult struct {
	Manager *entities.PermissionManager
	// Synced indica que houve ressincronização completa
	Synced bool
	// MissingRecreated é a quantidade de permissões ausentes detectadas e recriadas
	MissingRecreated int
}

// MissingReport é o resultado da verificação de permissões ausentes
type MissingReport struct {
	// Eligible é falso quando o manager está inativo ou sem usuário alvo
	Eligible     bool
	MissingCount int
}

// UserResult é o resultado de uma operação em lote para um usuário
type UserResult struct {
	User string
	Err  error
}

// ManagerResult é o resultado de uma operação em lote para um manager
type ManagerResult struct {
	Manager string
	Err     error
}

// ManagerPreview descreve o que um manager aplicaria
type ManagerPreview struct {
	Manager     *entities.PermissionManager
	TargetUsers []string
}

// ManagerOverview é um manager ativo com a quantidade de detalhes
type ManagerOverview struct {
	ID              string `json:"name"`
	ManagerName     string `json:"manager_name"`
	Description     string `json:"description"`
	ApplyToAllUsers bool   `json:"apply_to_all_users"`
	UserField       string `json:"user_field"`
	PermissionCount int    `json:"permission_count"`
}

// PermissionStatistics agrega contagens de managers e permissões
type PermissionStatistics struct {
	TotalManagers        int64                     `json:"total_managers"`
	ActiveManagers       int64                     `json:"active_managers"`
	InactiveManagers     int64                     `json:"inactive_managers"`
	TotalPermissions     int64                     `json:"total_permissions"`
	ManagedPermissions   int64                     `json:"managed_permissions"`
	ManualPermissions    int64                     `json:"manual_permissions"`
	UsersWithPermissions int64                     `json:"users_with_permissions"`
	CommonPermissions    []repositories.AllowCount `json:"common_permissions"`
}

// UserPermissionsSummary separa as permissões do usuário por origem
type UserPermissionsSummary struct {
	Managed          []*entities.UserPermission
	Manual           []*entities.UserPermission
	ManagerNames     map[string]string
	TotalPermissions int
}

const commonPermissionTypes = 5

func (in ManagerInput) toEntity() *entities.PermissionManager {
	m := &entities.PermissionManager{
		ManagerName:     strings.TrimSpace(in.ManagerName),
		AliasName:       strings.TrimSpace(in.AliasName),
		Description:     in.Description,
		UserField:       strings.ToLower(strings.TrimSpace(in.UserField)),
		ApplyToAllUsers: in.ApplyToAllUsers,
		IsActive:        in.IsActive,
		Details:         make([]entities.PermissionDetail, 0, len(in.Details)),
	}
	for i, d := range in.Details {
		m.Details = append(m.Details, entities.PermissionDetail{
			Idx:                i + 1,
			Allow:              strings.TrimSpace(d.Allow),
			ForValue:           strings.TrimSpace(d.ForValue),
			ApplicableFor:      strings.TrimSpace(d.ApplicableFor),
			ApplyToAllDocTypes: d.ApplyToAllDocTypes,
			IsDefault:          d.IsDefault,
			HideDescendants:    d.HideDescendants,
		})
	}
	return m
}

// CreateManager valida, grava e sincroniza um novo manager
func (s *PermissionManagerService) CreateManager(ctx context.Context, input ManagerInput) (*SaveResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	manager := input.toEntity()
	if err := manager.Validate(); err != nil {
		return nil, err
	}

	s.logger.Info("creating permission manager", "manager", manager.ManagerName)

	result := &SaveResult{Manager: manager}
	err := s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.managerRepo.FindByName(ctx, manager.ManagerName)
		if err != nil {
			return err
		}
		if existing != nil {
			return errors.WithParams(errors.ErrManagerNameTaken, map[string]interface{}{"Manager": manager.ManagerName})
		}

		if err := s.managerRepo.Create(ctx, manager); err != nil {
			return fmt.Errorf("failed to create permission manager: %w", err)
		}

		// documento novo: todos os gatilhos de sincronização são considerados alterados
		result.Synced = manager.IsActive
		return s.Sync(ctx, manager)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStatistics(ctx)
	return result, nil
}

// UpdateManager grava as alterações de um manager existente.
// Alterações de usuário alvo, detalhes ou ativação disparam ressincronização completa;
// sem essas alterações, um manager ativo apenas recria as permissões ausentes.
func (s *PermissionManagerService) UpdateManager(ctx context.Context, ref string, input ManagerInput) (*SaveResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	updated := input.toEntity()
	if err := updated.Validate(); err != nil {
		return nil, err
	}

	result := &SaveResult{Manager: updated}
	err := s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		previous, err := s.resolveManager(ctx, ref)
		if err != nil {
			return err
		}

		if updated.ManagerName != previous.ManagerName {
			other, err := s.managerRepo.FindByName(ctx, updated.ManagerName)
			if err != nil {
				return err
			}
			if other != nil && other.ID != previous.ID {
				return errors.WithParams(errors.ErrManagerNameTaken, map[string]interface{}{"Manager": updated.ManagerName})
			}
		}

		updated.ID = previous.ID
		updated.CreatedAt = previous.CreatedAt

		targetChanged := previous.UserField != updated.UserField || previous.ApplyToAllUsers != updated.ApplyToAllUsers
		detailsChanged := !previous.DetailsEqual(updated.Details)
		activated := !previous.IsActive && updated.IsActive

		if err := s.managerRepo.Update(ctx, updated); err != nil {
			return fmt.Errorf("failed to update permission manager: %w", err)
		}

		if targetChanged {
			if err := s.releasePreviousTargets(ctx, previous, updated); err != nil {
				return err
			}
		}

		if !updated.IsActive {
			return nil
		}

		if targetChanged || detailsChanged || activated {
			s.logger.Info("resyncing permission manager",
				"manager", updated.ManagerName,
				"target_changed", targetChanged,
				"details_changed", detailsChanged,
				"activated", activated,
			)
			result.Synced = true
			return s.Sync(ctx, updated)
		}

		count, err := s.recreateMissing(ctx, updated)
		result.MissingRecreated = count
		return err
	})
	if err != nil {
		return nil, err
	}

	if result.MissingRecreated > 0 {
		s.notifyMissingRecreated(ctx, updated, result.MissingRecreated)
	}

	s.invalidateStatistics(ctx)
	return result, nil
}

// releasePreviousTargets remove as linhas do manager dos usuários que deixaram de ser alvo
func (s *PermissionManagerService) releasePreviousTargets(ctx context.Context, previous, updated *entities.PermissionManager) error {
	before, err := s.configuredTargets(ctx, previous)
	if err != nil {
		return err
	}
	after, err := s.configuredTargets(ctx, updated)
	if err != nil {
		return err
	}

	keep := make(map[string]struct{}, len(after))
	for _, u := range after {
		keep[u] = struct{}{}
	}

	for _, user := range before {
		if _, ok := keep[user]; ok {
			continue
		}
		removed, err := s.permRepo.DeleteManaged(ctx, updated.ID, user)
		if err != nil {
			return fmt.Errorf("failed to release user %s: %w", user, err)
		}
		s.logger.Info("released previous target", "manager", updated.ManagerName, "user", user, "removed", removed)
	}
	return nil
}

// DeleteManager remove o manager e todas as linhas marcadas com ele, para todos os usuários
func (s *PermissionManagerService) DeleteManager(ctx context.Context, ref string) (*entities.PermissionManager, int64, error) {
	var (
		manager *entities.PermissionManager
		removed int64
	)

	err := s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		manager, err = s.resolveManager(ctx, ref)
		if err != nil {
			return err
		}

		removed, err = s.permRepo.DeleteManaged(ctx, manager.ID, "")
		if err != nil {
			return fmt.Errorf("failed to remove managed permissions: %w", err)
		}

		return s.managerRepo.Delete(ctx, manager.ID)
	})
	if err != nil {
		return nil, 0, err
	}

	s.logger.Info("permission manager deleted", "manager", manager.ManagerName, "removed_permissions", removed)
	s.invalidateStatistics(ctx)
	return manager, removed, nil
}

// GetManager busca um manager pelo ID ou pelo nome
func (s *PermissionManagerService) GetManager(ctx context.Context, ref string) (*entities.PermissionManager, error) {
	return s.resolveManager(ctx, ref)
}

// Sync ressincroniza todos os usuários do escopo: remove as linhas do manager e as recria.
// Não faz nada para managers inativos.
func (s *PermissionManagerService) Sync(ctx context.Context, manager *entities.PermissionManager) error {
	if !manager.IsActive {
		return nil
	}

	return s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		users, err := s.userScope(ctx, manager)
		if err != nil {
			return err
		}

		for _, user := range users {
			if err := s.applyToUser(ctx, manager, user); err != nil {
				return err
			}
		}

		s.logger.Debug("permission manager synced", "manager", manager.ManagerName, "users", len(users))
		return nil
	})
}

// applyToUser remove as linhas do manager para o usuário e recria uma por detalhe.
// Falhas de um detalhe são registradas e não interrompem os demais.
func (s *PermissionManagerService) applyToUser(ctx context.Context, manager *entities.PermissionManager, user string) error {
	if _, err := s.permRepo.DeleteManaged(ctx, manager.ID, user); err != nil {
		return fmt.Errorf("failed to remove managed permissions of %s: %w", user, err)
	}

	for _, detail := range manager.Details {
		if !detail.Applicable() {
			continue
		}

		err := s.uow.WithTransaction(ctx, func(ctx context.Context) error {
			return s.upsertPermission(ctx, manager.ID, user, detail)
		})
		if err != nil {
			s.logger.Error("user permission creation failed",
				"manager", manager.ManagerName,
				"user", user,
				"allow", detail.Allow,
				"for_value", detail.ForValue,
				"error", err,
			)
		}
	}
	return nil
}

// upsertPermission assume a linha manual com a mesma combinação, ou cria uma nova.
// Uma linha igual de outro manager continua dele; este manager ganha a sua própria.
func (s *PermissionManagerService) upsertPermission(ctx context.Context, managerID, user string, detail entities.PermissionDetail) error {
	existing, err := s.permRepo.FindAdoptable(ctx, managerID, user, detail.Key())
	if err != nil {
		return err
	}

	if existing != nil {
		existing.ApplyDetail(managerID, detail)
		return s.permRepo.Update(ctx, existing)
	}

	perm := &entities.UserPermission{User: user}
	perm.ApplyDetail(managerID, detail)
	return s.permRepo.Create(ctx, perm)
}

// configuredTargets retorna os usuários configurados no manager: o usuário alvo,
// ou todos os usuários de sistema habilitados quando apply_to_all_users está marcado
func (s *PermissionManagerService) configuredTargets(ctx context.Context, manager *entities.PermissionManager) ([]string, error) {
	if manager.ApplyToAllUsers {
		return s.userRepo.ListGlobalScopeEmails(ctx)
	}
	if manager.UserField != "" {
		return []string{manager.UserField}, nil
	}
	return nil, nil
}

// userScope une os usuários configurados com os que já possuem linhas do manager
func (s *PermissionManagerService) userScope(ctx context.Context, manager *entities.PermissionManager) ([]string, error) {
	configured, err := s.configuredTargets(ctx, manager)
	if err != nil {
		return nil, err
	}

	var applied []string
	if !manager.IsNew() {
		applied, err = s.permRepo.ListManagedUsers(ctx, manager.ID)
		if err != nil {
			return nil, err
		}
	}

	seen := make(map[string]struct{}, len(configured)+len(applied))
	users := make([]string, 0, len(configured)+len(applied))
	for _, list := range [][]string{configured, applied} {
		for _, u := range list {
			if _, ok := seen[u]; ok {
				continue
			}
			seen[u] = struct{}{}
			users = append(users, u)
		}
	}
	sort.Strings(users)
	return users, nil
}

// countMissing conta as combinações (usuário x detalhe) sem linha marcada com o manager
func (s *PermissionManagerService) countMissing(ctx context.Context, manager *entities.PermissionManager, users []string) (int, error) {
	missing := 0
	for _, user := range users {
		for _, detail := range manager.Details {
			if !detail.Applicable() {
				continue
			}
			ok, err := s.permRepo.ExistsManaged(ctx, manager.ID, user, detail.Key())
			if err != nil {
				return 0, err
			}
			if !ok {
				missing++
			}
		}
	}
	return missing, nil
}

// recreateMissing ressincroniza o escopo quando há permissões ausentes e retorna quantas eram
func (s *PermissionManagerService) recreateMissing(ctx context.Context, manager *entities.PermissionManager) (int, error) {
	users, err := s.userScope(ctx, manager)
	if err != nil {
		return 0, err
	}

	missing, err := s.countMissing(ctx, manager, users)
	if err != nil || missing == 0 {
		return 0, err
	}

	s.logger.Warn("missing managed permissions detected", "manager", manager.ManagerName, "missing", missing)
	for _, user := range users {
		if err := s.applyToUser(ctx, manager, user); err != nil {
			return 0, err
		}
	}
	return missing, nil
}

// CheckMissing conta as permissões ausentes sem alterar nada
func (s *PermissionManagerService) CheckMissing(ctx context.Context, ref string) (*MissingReport, error) {
	manager, err := s.resolveManager(ctx, ref)
	if err != nil {
		return nil, err
	}

	users, err := s.eligibleScope(ctx, manager)
	if err != nil || len(users) == 0 {
		return &MissingReport{}, err
	}

	missing, err := s.countMissing(ctx, manager, users)
	if err != nil {
		return nil, err
	}
	return &MissingReport{Eligible: true, MissingCount: missing}, nil
}

// RecreateMissing recria as permissões ausentes e emite um aviso com a quantidade
func (s *PermissionManagerService) RecreateMissing(ctx context.Context, ref string) (*MissingReport, error) {
	report := &MissingReport{}

	var manager *entities.PermissionManager
	err := s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		manager, err = s.resolveManager(ctx, ref)
		if err != nil {
			return err
		}

		users, err := s.eligibleScope(ctx, manager)
		if err != nil || len(users) == 0 {
			return err
		}

		report.Eligible = true
		report.MissingCount, err = s.recreateMissing(ctx, manager)
		return err
	})
	if err != nil {
		return nil, err
	}

	if report.MissingCount > 0 {
		s.notifyMissingRecreated(ctx, manager, report.MissingCount)
		s.invalidateStatistics(ctx)
	}
	return report, nil
}

// eligibleScope retorna o escopo de um manager ativo; vazio quando inativo
func (s *PermissionManagerService) eligibleScope(ctx context.Context, manager *entities.PermissionManager) ([]string, error) {
	if !manager.IsActive {
		return nil, nil
	}
	return s.userScope(ctx, manager)
}

// ApplyToUser aplica o manager a um usuário específico
func (s *PermissionManagerService) ApplyToUser(ctx context.Context, ref, user string) error {
	user = strings.ToLower(strings.TrimSpace(user))

	err := s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		manager, err := s.activeManager(ctx, ref)
		if err != nil {
			return err
		}
		s.logger.Info("applying permission manager", "manager", manager.ManagerName, "user", user)
		return s.applyToUser(ctx, manager, user)
	})
	if err != nil {
		return err
	}

	s.invalidateStatistics(ctx)
	return nil
}

// BulkApply aplica o manager a vários usuários; a falha de um usuário não interrompe os demais
func (s *PermissionManagerService) BulkApply(ctx context.Context, ref string, users []string) ([]UserResult, error) {
	manager, err := s.activeManager(ctx, ref)
	if err != nil {
		return nil, err
	}

	results := make([]UserResult, 0, len(users))
	for _, user := range users {
		user = strings.ToLower(strings.TrimSpace(user))
		err := s.uow.WithTransaction(ctx, func(ctx context.Context) error {
			return s.applyToUser(ctx, manager, user)
		})
		if err != nil {
			s.logger.Error("bulk apply failed", "manager", manager.ManagerName, "user", user, "error", err)
		}
		results = append(results, UserResult{User: user, Err: err})
	}

	s.invalidateStatistics(ctx)
	return results, nil
}

// RemoveFromUser remove as linhas do manager de um usuário e retorna quantas foram removidas
func (s *PermissionManagerService) RemoveFromUser(ctx context.Context, ref, user string) (int64, error) {
	manager, err := s.resolveManager(ctx, ref)
	if err != nil {
		return 0, err
	}

	removed, err := s.permRepo.DeleteManaged(ctx, manager.ID, strings.ToLower(strings.TrimSpace(user)))
	if err != nil {
		return 0, err
	}

	s.logger.Info("permission manager removed from user", "manager", manager.ManagerName, "user", user, "removed", removed)
	s.invalidateStatistics(ctx)
	return removed, nil
}

// Preview descreve os detalhes e os usuários alvo de um manager
func (s *PermissionManagerService) Preview(ctx context.Context, ref string) (*ManagerPreview, error) {
	manager, err := s.resolveManager(ctx, ref)
	if err != nil {
		return nil, err
	}

	users, err := s.configuredTargets(ctx, manager)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []string{}
	}
	return &ManagerPreview{Manager: manager, TargetUsers: users}, nil
}

// SyncAll ressincroniza todos os managers ativos, um resultado por manager
func (s *PermissionManagerService) SyncAll(ctx context.Context) ([]ManagerResult, error) {
	managers, err := s.managerRepo.List(ctx, repositories.ManagerFilters{ActiveOnly: true})
	if err != nil {
		return nil, err
	}

	results := make([]ManagerResult, 0, len(managers))
	for _, manager := range managers {
		err := s.Sync(ctx, manager)
		if err != nil {
			s.logger.Error("manager sync failed", "manager", manager.ManagerName, "error", err)
		}
		results = append(results, ManagerResult{Manager: manager.ManagerName, Err: err})
	}

	s.invalidateStatistics(ctx)
	return results, nil
}

// AvailableManagers lista os managers ativos com a quantidade de detalhes
func (s *PermissionManagerService) AvailableManagers(ctx context.Context) ([]ManagerOverview, error) {
	managers, err := s.managerRepo.List(ctx, repositories.ManagerFilters{ActiveOnly: true})
	if err != nil {
		return nil, err
	}

	overview := make([]ManagerOverview, 0, len(managers))
	for _, m := range managers {
		overview = append(overview, ManagerOverview{
			ID:              m.ID,
			ManagerName:     m.ManagerName,
			Description:     m.Description,
			ApplyToAllUsers: m.ApplyToAllUsers,
			UserField:       m.UserField,
			PermissionCount: len(m.Details),
		})
	}
	return overview, nil
}

// ListManagers lista todos os managers, ativos ou não
func (s *PermissionManagerService) ListManagers(ctx context.Context) ([]*entities.PermissionManager, error) {
	return s.managerRepo.List(ctx, repositories.ManagerFilters{})
}

// Statistics retorna as estatísticas de managers e permissões
func (s *PermissionManagerService) Statistics(ctx context.Context) (*PermissionStatistics, error) {
	var cached PermissionStatistics
	if found, err := s.cache.Get(ctx, ports.CacheKeyPermissionStatistics, &cached); err != nil {
		s.logger.Warn("statistics cache read failed", "error", err)
	} else if found {
		return &cached, nil
	}

	total, err := s.managerRepo.Count(ctx, repositories.ManagerFilters{})
	if err != nil {
		return nil, err
	}
	active, err := s.managerRepo.Count(ctx, repositories.ManagerFilters{ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	perms, err := s.permRepo.Stats(ctx, commonPermissionTypes)
	if err != nil {
		return nil, err
	}

	common := perms.CommonTypes
	if common == nil {
		common = []repositories.AllowCount{}
	}

	stats := &PermissionStatistics{
		TotalManagers:        total,
		ActiveManagers:       active,
		InactiveManagers:     total - active,
		TotalPermissions:     perms.Total,
		ManagedPermissions:   perms.Managed,
		ManualPermissions:    perms.Total - perms.Managed,
		UsersWithPermissions: perms.UsersWithPermission,
		CommonPermissions:    common,
	}

	if err := s.cache.Set(ctx, ports.CacheKeyPermissionStatistics, stats); err != nil {
		s.logger.Warn("statistics cache write failed", "error", err)
	}
	return stats, nil
}

// UserPermissionsSummary separa as permissões do usuário entre gerenciadas e manuais
func (s *PermissionManagerService) UserPermissionsSummary(ctx context.Context, user string) (*UserPermissionsSummary, error) {
	user = strings.ToLower(strings.TrimSpace(user))

	perms, err := s.permRepo.ListByUser(ctx, user)
	if err != nil {
		return nil, err
	}
	refs, err := s.permRepo.ManagersForUser(ctx, user)
	if err != nil {
		return nil, err
	}

	summary := &UserPermissionsSummary{
		Managed:          []*entities.UserPermission{},
		Manual:           []*entities.UserPermission{},
		ManagerNames:     make(map[string]string, len(refs)),
		TotalPermissions: len(perms),
	}
	for _, ref := range refs {
		summary.ManagerNames[ref.ManagerID] = ref.ManagerName
	}
	for _, p := range perms {
		if p.IsManaged() {
			summary.Managed = append(summary.Managed, p)
		} else {
			summary.Manual = append(summary.Manual, p)
		}
	}
	return summary, nil
}

// ManagersForUser lista os managers distintos aplicados ao usuário
func (s *PermissionManagerService) ManagersForUser(ctx context.Context, user string) ([]repositories.ManagerReference, error) {
	refs, err := s.permRepo.ManagersForUser(ctx, strings.ToLower(strings.TrimSpace(user)))
	if err != nil {
		return nil, err
	}
	if refs == nil {
		refs = []repositories.ManagerReference{}
	}
	return refs, nil
}

// resolveManager aceita o ID ou o nome do manager
func (s *PermissionManagerService) resolveManager(ctx context.Context, ref string) (*entities.PermissionManager, error) {
	manager, err := s.managerRepo.FindByID(ctx, ref)
	if err != nil {
		return nil, err
	}
	if manager == nil {
		manager, err = s.managerRepo.FindByName(ctx, ref)
		if err != nil {
			return nil, err
		}
	}
	if manager == nil {
		return nil, errors.WithParams(errors.ErrManagerNotFound, map[string]interface{}{"Manager": ref})
	}
	return manager, nil
}

func (s *PermissionManagerService) activeManager(ctx context.Context, ref string) (*entities.PermissionManager, error) {
	manager, err := s.resolveManager(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !manager.IsActive {
		return nil, errors.ErrManagerInactive
	}
	return manager, nil
}

func (s *PermissionManagerService) notifyMissingRecreated(ctx context.Context, manager *entities.PermissionManager, count int) {
	s.notifier.Notify(ctx, ports.Notice{
		Level:   ports.NoticeWarning,
		Key:     "notice.missing_permissions_recreated",
		Params:  map[string]interface{}{"Count": count},
		Subject: manager.ManagerName,
	})
}

func (s *PermissionManagerService) invalidateStatistics(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, ports.CacheKeyPermissionStatistics); err != nil {
		s.logger.Warn("failed to invalidate permission statistics", "error", err)
	}
}
