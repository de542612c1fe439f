package relational

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/rafabene/access-admin/internal/domain/entities"
	domainerrors "github.com/rafabene/access-admin/internal/domain/errors"
	"github.com/rafabene/access-admin/internal/domain/repositories"
)

// RoleRepository implementa repositories.RoleRepository
type RoleRepository struct {
	db *gorm.DB
}

// NewRoleRepository cria um novo RoleRepository
func NewRoleRepository(db *gorm.DB) repositories.RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) Create(ctx context.Context, role *entities.Role) error {
	model := &RoleModel{
		Name:             role.Name,
		Disabled:         role.Disabled,
		DeskAccess:       role.DeskAccess,
		TwoFactorAuth:    role.TwoFactorAuth,
		RestrictToDomain: role.RestrictToDomain,
		IsCustom:         role.IsCustom,
	}
	// a chave primária em name decide duplicações concorrentes para o mesmo nome
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.WithParams(domainerrors.ErrRoleAlreadyExists, map[string]interface{}{"Role": role.Name})
		}
		return err
	}
	role.CreatedAt = time.Unix(model.CreatedAt, 0)
	role.UpdatedAt = time.Unix(model.UpdatedAt, 0)
	return nil
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*entities.Role, error) {
	var model RoleModel
	if err := dbFromContext(ctx, r.db).Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toRoleEntity(&model), nil
}

func (r *RoleRepository) Exists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := dbFromContext(ctx, r.db).Model(&RoleModel{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *RoleRepository) List(ctx context.Context) ([]*entities.Role, error) {
	var models []*RoleModel
	if err := dbFromContext(ctx, r.db).Order("name").Find(&models).Error; err != nil {
		return nil, err
	}

	roles := make([]*entities.Role, 0, len(models))
	for _, m := range models {
		roles = append(roles, toRoleEntity(m))
	}
	return roles, nil
}

func toRoleEntity(m *RoleModel) *entities.Role {
	return &entities.Role{
		Name:             m.Name,
		Disabled:         m.Disabled,
		DeskAccess:       m.DeskAccess,
		TwoFactorAuth:    m.TwoFactorAuth,
		RestrictToDomain: m.RestrictToDomain,
		IsCustom:         m.IsCustom,
		CreatedAt:        time.Unix(m.CreatedAt, 0),
		UpdatedAt:        time.Unix(m.UpdatedAt, 0),
	}
}

// DocTypeRepository implementa repositories.DocTypeRepository
type DocTypeRepository struct {
	db *gorm.DB
}

// NewDocTypeRepository cria um novo DocTypeRepository
func NewDocTypeRepository(db *gorm.DB) repositories.DocTypeRepository {
	return &DocTypeRepository{db: db}
}

func (r *DocTypeRepository) Create(ctx context.Context, docType *entities.DocType) error {
	return dbFromContext(ctx, r.db).Create(&DocTypeModel{
		Name:     docType.Name,
		IsSingle: docType.IsSingle,
		IsTable:  docType.IsTable,
		Custom:   docType.Custom,
	}).Error
}

func (r *DocTypeRepository) Exists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := dbFromContext(ctx, r.db).Model(&DocTypeModel{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}
