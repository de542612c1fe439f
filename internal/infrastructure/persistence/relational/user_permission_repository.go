package relational

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/rafabene/access-admin/internal/domain/entities"
	"github.com/rafabene/access-admin/internal/domain/repositories"
)

// UserPermissionRepository implementa repositories.UserPermissionRepository
type UserPermissionRepository struct {
	db *gorm.DB
}

// NewUserPermissionRepository cria um novo UserPermissionRepository
func NewUserPermissionRepository(db *gorm.DB) repositories.UserPermissionRepository {
	return &UserPermissionRepository{db: db}
}

func (r *UserPermissionRepository) Create(ctx context.Context, perm *entities.UserPermission) error {
	model := toUserPermissionModel(perm)
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return err
	}
	perm.ID = model.ID
	perm.CreatedAt = time.Unix(model.CreatedAt, 0)
	perm.UpdatedAt = time.Unix(model.UpdatedAt, 0)
	return nil
}

func (r *UserPermissionRepository) Update(ctx context.Context, perm *entities.UserPermission) error {
	model := toUserPermissionModel(perm)
	if err := dbFromContext(ctx, r.db).Save(model).Error; err != nil {
		return err
	}
	perm.UpdatedAt = time.Unix(model.UpdatedAt, 0)
	return nil
}

func (r *UserPermissionRepository) Delete(ctx context.Context, id string) error {
	return dbFromContext(ctx, r.db).Where("id = ?", id).Delete(&UserPermissionModel{}).Error
}

func (r *UserPermissionRepository) FindByID(ctx context.Context, id string) (*entities.UserPermission, error) {
	var model UserPermissionModel
	if err := dbFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toUserPermissionEntity(&model), nil
}

func (r *UserPermissionRepository) FindAdoptable(ctx context.Context, managerID, user string, key entities.DetailKey) (*entities.UserPermission, error) {
	var model UserPermissionModel
	query := dbFromContext(ctx, r.db).
		Where("user_email = ?", user).
		Where("(permission_manager_id IS NULL OR permission_manager_id = ?)", managerID)
	query = matchKey(query, key)
	if err := query.Order("created_at").First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toUserPermissionEntity(&model), nil
}

func (r *UserPermissionRepository) ExistsManaged(ctx context.Context, managerID, user string, key entities.DetailKey) (bool, error) {
	var count int64
	query := dbFromContext(ctx, r.db).Model(&UserPermissionModel{}).
		Where("user_email = ? AND permission_manager_id = ?", user, managerID)
	err := matchKey(query, key).Count(&count).Error
	return count > 0, err
}

func (r *UserPermissionRepository) ListByUser(ctx context.Context, user string) ([]*entities.UserPermission, error) {
	return r.list(ctx, dbFromContext(ctx, r.db).Where("user_email = ?", user))
}

func (r *UserPermissionRepository) ListByManager(ctx context.Context, managerID string) ([]*entities.UserPermission, error) {
	return r.list(ctx, dbFromContext(ctx, r.db).Where("permission_manager_id = ?", managerID))
}

func (r *UserPermissionRepository) list(_ context.Context, query *gorm.DB) ([]*entities.UserPermission, error) {
	var models []*UserPermissionModel
	if err := query.Order("allow").Order("for_value").Find(&models).Error; err != nil {
		return nil, err
	}

	perms := make([]*entities.UserPermission, 0, len(models))
	for _, m := range models {
		perms = append(perms, toUserPermissionEntity(m))
	}
	return perms, nil
}

func (r *UserPermissionRepository) ListManagedUsers(ctx context.Context, managerID string) ([]string, error) {
	var users []string
	err := dbFromContext(ctx, r.db).Model(&UserPermissionModel{}).
		Where("permission_manager_id = ?", managerID).
		Distinct().
		Order("user_email").
		Pluck("user_email", &users).Error
	return users, err
}

func (r *UserPermissionRepository) DeleteManaged(ctx context.Context, managerID, user string) (int64, error) {
	query := dbFromContext(ctx, r.db).Where("permission_manager_id = ?", managerID)
	if user != "" {
		query = query.Where("user_email = ?", user)
	}
	result := query.Delete(&UserPermissionModel{})
	return result.RowsAffected, result.Error
}

func (r *UserPermissionRepository) Stats(ctx context.Context, topTypes int) (*repositories.UserPermissionStats, error) {
	db := dbFromContext(ctx, r.db)
	stats := &repositories.UserPermissionStats{}

	if err := db.Model(&UserPermissionModel{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&UserPermissionModel{}).
		Where("permission_manager_id IS NOT NULL AND permission_manager_id <> ''").
		Count(&stats.Managed).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&UserPermissionModel{}).
		Distinct("user_email").
		Count(&stats.UsersWithPermission).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&UserPermissionModel{}).
		Select("allow, COUNT(*) AS count").
		Group("allow").
		Order("count DESC").Order("allow").
		Limit(topTypes).
		Scan(&stats.CommonTypes).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *UserPermissionRepository) ManagersForUser(ctx context.Context, user string) ([]repositories.ManagerReference, error) {
	var refs []repositories.ManagerReference
	err := dbFromContext(ctx, r.db).
		Table("user_permissions AS up").
		Select("DISTINCT up.permission_manager_id AS manager_id, " +
			"COALESCE(pm.manager_name, '') AS manager_name, " +
			"COALESCE(pm.description, '') AS description").
		Joins("LEFT JOIN permission_managers pm ON up.permission_manager_id = pm.id").
		Where("up.user_email = ? AND up.permission_manager_id IS NOT NULL", user).
		Order("manager_name").
		Scan(&refs).Error
	return refs, err
}

// matchKey filtra pela combinação (tipo, valor, aplicável a); aplicável a vazio casa com NULL
func matchKey(query *gorm.DB, key entities.DetailKey) *gorm.DB {
	query = query.Where("allow = ? AND for_value = ?", key.Allow, key.ForValue)
	if key.ApplicableFor == "" {
		return query.Where("applicable_for IS NULL")
	}
	return query.Where("applicable_for = ?", key.ApplicableFor)
}

// Conversores
func toUserPermissionModel(p *entities.UserPermission) *UserPermissionModel {
	return &UserPermissionModel{
		ID:                  p.ID,
		UserEmail:           p.User,
		Allow:               p.Allow,
		ForValue:            p.ForValue,
		ApplicableFor:       nullable(p.ApplicableFor),
		ApplyToAll:          p.ApplyToAll,
		IsDefault:           p.IsDefault,
		HideDescendants:     p.HideDescendants,
		PermissionManagerID: nullable(p.ManagerID),
		CreatedAt:           unixOrZero(p.CreatedAt),
	}
}

func toUserPermissionEntity(m *UserPermissionModel) *entities.UserPermission {
	return &entities.UserPermission{
		ID:              m.ID,
		User:            m.UserEmail,
		Allow:           m.Allow,
		ForValue:        m.ForValue,
		ApplicableFor:   deref(m.ApplicableFor),
		ApplyToAll:      m.ApplyToAll,
		IsDefault:       m.IsDefault,
		HideDescendants: m.HideDescendants,
		ManagerID:       deref(m.PermissionManagerID),
		CreatedAt:       time.Unix(m.CreatedAt, 0),
		UpdatedAt:       time.Unix(m.UpdatedAt, 0),
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
