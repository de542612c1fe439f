package services

import (
	"context"
	"strings"

	"github.com/rafabene/access-admin/internal/domain/entities"
	"github.com/rafabene/access-admin/internal/domain/errors"
	"github.com/rafabene/access-admin/internal/domain/ports"
	"github.com/rafabene/access-admin/internal/domain/repositories"
	"github.com/rafabene/access-admin/internal/domain/valueobjects"
)

// UserService mantém o cadastro de usuários que recebem permissões.
// Usuários de sistema habilitados formam o alcance dos managers globais.
type UserService struct {
	userRepo repositories.UserRepository
	uow      ports.UnitOfWork
	logger   ports.Logger
}

// NewUserService cria um novo UserService
func NewUserService(
	userRepo repositories.UserRepository,
	uow ports.UnitOfWork,
	logger ports.Logger,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		uow:      uow,
		logger:   logger.With("component", "users"),
	}
}

// CreateUserInput representa os dados para criar um usuário
type CreateUserInput struct {
	Email    string            `validate:"required,email"`
	FullName string            `validate:"required,max=140"`
	UserType entities.UserType `validate:"omitempty,oneof='System User' 'Website User'"`
	Disabled bool
}

// CreateUser registra um usuário. O tipo padrão é System User.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*entities.User, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:    email,
		FullName: strings.TrimSpace(input.FullName),
		Enabled:  !input.Disabled,
		UserType: input.UserType,
	}
	if user.UserType == "" {
		user.UserType = entities.UserTypeSystem
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	err = s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.userRepo.FindByEmail(ctx, email.String())
		if err != nil {
			return err
		}
		if existing != nil {
			return errors.WithParams(errors.ErrUserAlreadyExists, map[string]interface{}{"Email": email.String()})
		}
		return s.userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created", "email", email.String(), "user_type", user.UserType)
	return user, nil
}

// GetUser busca um usuário pelo ID ou pelo email
func (s *UserService) GetUser(ctx context.Context, ref string) (*entities.User, error) {
	var (
		user *entities.User
		err  error
	)
	if strings.Contains(ref, "@") {
		user, err = s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(ref)))
	} else {
		user, err = s.userRepo.FindByID(ctx, ref)
	}
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}

// SetUserEnabled habilita ou desabilita um usuário.
// As permissões existentes ficam intactas; managers globais param de alcançar
// o usuário na próxima sincronização.
func (s *UserService) SetUserEnabled(ctx context.Context, ref string, enabled bool) (*entities.User, error) {
	var user *entities.User
	err := s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.GetUser(ctx, ref)
		if err != nil {
			return err
		}
		if user.Enabled == enabled {
			return nil
		}
		if err := s.userRepo.SetEnabled(ctx, user.ID, enabled); err != nil {
			return err
		}
		user.Enabled = enabled
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user enabled state changed", "email", user.Email.String(), "enabled", enabled)
	return user, nil
}

// ListUsers lista usuários com filtros
func (s *UserService) ListUsers(ctx context.Context, filters repositories.UserFilters) ([]*entities.User, error) {
	return s.userRepo.List(ctx, filters)
}
