package relational

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rafabene/access-admin/internal/domain/entities"
	domainerrors "github.com/rafabene/access-admin/internal/domain/errors"
	"github.com/rafabene/access-admin/internal/domain/repositories"
)

// PermissionManagerRepository implementa repositories.PermissionManagerRepository
type PermissionManagerRepository struct {
	db *gorm.DB
}

// NewPermissionManagerRepository cria um novo PermissionManagerRepository
func NewPermissionManagerRepository(db *gorm.DB) repositories.PermissionManagerRepository {
	return &PermissionManagerRepository{db: db}
}

func (r *PermissionManagerRepository) Create(ctx context.Context, manager *entities.PermissionManager) error {
	model := toManagerModel(manager)

	// Cria o manager e os detalhes (associação has-many) no mesmo comando
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return nameTaken(err, manager)
	}

	r.copyGeneratedFields(manager, model)
	return nil
}

func (r *PermissionManagerRepository) Update(ctx context.Context, manager *entities.PermissionManager) error {
	db := dbFromContext(ctx, r.db)
	model := toManagerModel(manager)

	if err := db.Omit(clause.Associations).Save(model).Error; err != nil {
		return nameTaken(err, manager)
	}

	if err := db.Where("manager_id = ?", model.ID).Delete(&PermissionManagerDetailModel{}).Error; err != nil {
		return err
	}

	if len(model.Details) > 0 {
		if err := db.Create(&model.Details).Error; err != nil {
			return err
		}
	}

	r.copyGeneratedFields(manager, model)
	return nil
}

// nameTaken converte a violação do índice único de manager_name em erro de domínio.
// Detalhes repetidos são barrados antes pela validação do manager.
func nameTaken(err error, manager *entities.PermissionManager) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainerrors.WithParams(domainerrors.ErrManagerNameTaken, map[string]interface{}{"Manager": manager.ManagerName})
	}
	return err
}

func (r *PermissionManagerRepository) Delete(ctx context.Context, id string) error {
	db := dbFromContext(ctx, r.db)
	if err := db.Where("manager_id = ?", id).Delete(&PermissionManagerDetailModel{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&PermissionManagerModel{}).Error
}

func (r *PermissionManagerRepository) FindByID(ctx context.Context, id string) (*entities.PermissionManager, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *PermissionManagerRepository) FindByName(ctx context.Context, name string) (*entities.PermissionManager, error) {
	return r.findOne(ctx, "manager_name = ?", name)
}

func (r *PermissionManagerRepository) findOne(ctx context.Context, query string, arg any) (*entities.PermissionManager, error) {
	var model PermissionManagerModel
	err := r.withDetails(dbFromContext(ctx, r.db)).Where(query, arg).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toManagerEntity(&model), nil
}

func (r *PermissionManagerRepository) List(ctx context.Context, filters repositories.ManagerFilters) ([]*entities.PermissionManager, error) {
	var models []*PermissionManagerModel

	query := r.withDetails(dbFromContext(ctx, r.db))
	if filters.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Order("manager_name").Find(&models).Error; err != nil {
		return nil, err
	}

	managers := make([]*entities.PermissionManager, 0, len(models))
	for _, m := range models {
		managers = append(managers, toManagerEntity(m))
	}
	return managers, nil
}

func (r *PermissionManagerRepository) Count(ctx context.Context, filters repositories.ManagerFilters) (int64, error) {
	var count int64
	query := dbFromContext(ctx, r.db).Model(&PermissionManagerModel{})
	if filters.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *PermissionManagerRepository) withDetails(db *gorm.DB) *gorm.DB {
	return db.Preload("Details", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("idx")
	})
}

func (r *PermissionManagerRepository) copyGeneratedFields(manager *entities.PermissionManager, model *PermissionManagerModel) {
	manager.ID = model.ID
	manager.CreatedAt = time.Unix(model.CreatedAt, 0)
	manager.UpdatedAt = time.Unix(model.UpdatedAt, 0)
	for i := range manager.Details {
		if i < len(model.Details) {
			manager.Details[i].ID = model.Details[i].ID
			manager.Details[i].Idx = model.Details[i].Idx
		}
	}
}

// Conversores
func toManagerModel(m *entities.PermissionManager) *PermissionManagerModel {
	details := make([]PermissionManagerDetailModel, len(m.Details))
	for i, d := range m.Details {
		details[i] = PermissionManagerDetailModel{
			ManagerID:          m.ID,
			Idx:                i + 1,
			Allow:              d.Allow,
			ForValue:           d.ForValue,
			ApplicableFor:      d.ApplicableFor,
			ApplyToAllDocTypes: d.ApplyToAllDocTypes,
			IsDefault:          d.IsDefault,
			HideDescendants:    d.HideDescendants,
		}
	}

	return &PermissionManagerModel{
		ID:              m.ID,
		ManagerName:     m.ManagerName,
		AliasName:       m.AliasName,
		Description:     m.Description,
		UserField:       m.UserField,
		ApplyToAllUsers: m.ApplyToAllUsers,
		IsActive:        m.IsActive,
		CreatedAt:       unixOrZero(m.CreatedAt),
		Details:         details,
	}
}

func toManagerEntity(m *PermissionManagerModel) *entities.PermissionManager {
	details := make([]entities.PermissionDetail, len(m.Details))
	for i, d := range m.Details {
		details[i] = entities.PermissionDetail{
			ID:                 d.ID,
			Idx:                d.Idx,
			Allow:              d.Allow,
			ForValue:           d.ForValue,
			ApplicableFor:      d.ApplicableFor,
			ApplyToAllDocTypes: d.ApplyToAllDocTypes,
			IsDefault:          d.IsDefault,
			HideDescendants:    d.HideDescendants,
		}
	}

	return &entities.PermissionManager{
		ID:              m.ID,
		ManagerName:     m.ManagerName,
		AliasName:       m.AliasName,
		Description:     m.Description,
		UserField:       m.UserField,
		ApplyToAllUsers: m.ApplyToAllUsers,
		IsActive:        m.IsActive,
		Details:         details,
		CreatedAt:       time.Unix(m.CreatedAt, 0),
		UpdatedAt:       time.Unix(m.UpdatedAt, 0),
	}
}
