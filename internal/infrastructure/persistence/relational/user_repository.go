package relational

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/rafabene/access-admin/internal/domain/entities"
	"github.com/rafabene/access-admin/internal/domain/repositories"
	"github.com/rafabene/access-admin/internal/domain/valueobjects"
)

const (
	defaultUserPageSize = 20
	maxUserPageSize     = 100
)

// UserRepository implementa repositories.UserRepository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository cria um novo UserRepository
func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	model := &UserModel{
		ID:        user.ID,
		Email:     user.Email.String(),
		FullName:  user.FullName,
		Enabled:   user.Enabled,
		UserType:  string(user.UserType),
		CreatedAt: unixOrZero(user.CreatedAt),
	}
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return err
	}

	user.ID = model.ID
	user.CreatedAt = time.Unix(model.CreatedAt, 0)
	user.UpdatedAt = time.Unix(model.UpdatedAt, 0)
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *UserRepository) first(ctx context.Context, query string, arg string) (*entities.User, error) {
	var model UserModel
	err := dbFromContext(ctx, r.db).Where(query, arg).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toUserEntity(&model)
}

func (r *UserRepository) SetEnabled(ctx context.Context, id string, enabled bool) error {
	return dbFromContext(ctx, r.db).Model(&UserModel{}).
		Where("id = ?", id).
		Update("enabled", enabled).Error
}

func (r *UserRepository) List(ctx context.Context, filters repositories.UserFilters) ([]*entities.User, error) {
	query := dbFromContext(ctx, r.db).Model(&UserModel{})
	if filters.UserType != nil {
		query = query.Where("user_type = ?", string(*filters.UserType))
	}
	if filters.EnabledOnly {
		query = query.Scopes(enabledUsers)
	}

	var models []*UserModel
	if err := query.Scopes(paginate(filters.Page, filters.PageSize)).Order("full_name").Find(&models).Error; err != nil {
		return nil, err
	}

	users := make([]*entities.User, 0, len(models))
	for _, model := range models {
		user, err := toUserEntity(model)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (r *UserRepository) ListGlobalScopeEmails(ctx context.Context) ([]string, error) {
	var emails []string
	err := dbFromContext(ctx, r.db).Model(&UserModel{}).
		Scopes(enabledUsers).
		Where("user_type = ?", string(entities.UserTypeSystem)).
		Order("email").
		Pluck("email", &emails).Error
	return emails, err
}

func enabledUsers(db *gorm.DB) *gorm.DB {
	return db.Where("enabled = ?", true)
}

// paginate limita a página a maxUserPageSize itens
func paginate(page, pageSize int) func(*gorm.DB) *gorm.DB {
	if page < 1 {
		page = 1
	}
	switch {
	case pageSize < 1:
		pageSize = defaultUserPageSize
	case pageSize > maxUserPageSize:
		pageSize = maxUserPageSize
	}

	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

func toUserEntity(model *UserModel) (*entities.User, error) {
	email, err := valueobjects.NewEmail(model.Email)
	if err != nil {
		return nil, err
	}

	return &entities.User{
		ID:        model.ID,
		Email:     email,
		FullName:  model.FullName,
		Enabled:   model.Enabled,
		UserType:  entities.UserType(model.UserType),
		CreatedAt: time.Unix(model.CreatedAt, 0),
		UpdatedAt: time.Unix(model.UpdatedAt, 0),
	}, nil
}

// unixOrZero evita gravar o timestamp negativo de time.Time{}; zero deixa o autoCreateTime agir
func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
