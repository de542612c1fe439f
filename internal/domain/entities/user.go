package entities

import (
	"time"

	"github.com/rafabene/access-admin/internal/domain/errors"
	"github.com/rafabene/access-admin/internal/domain/valueobjects"
)

// UserType classifica os usuários do sistema hospedeiro
type UserType string

const (
	UserTypeSystem  UserType = "System User"
	UserTypeWebsite UserType = "Website User"
)

// User é um usuário que pode receber permissões de documento.
// O email é a referência usada pelas permissões e pelos managers.
type User struct {
	ID        string
	Email     valueobjects.Email
	FullName  string
	Enabled   bool
	UserType  UserType
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsSystemUser verifica se o usuário tem acesso ao sistema
func (u *User) IsSystemUser() bool {
	return u.UserType == UserTypeSystem
}

// InGlobalScope indica se managers com apply_to_all_users alcançam o usuário
func (u *User) InGlobalScope() bool {
	return u.Enabled && u.IsSystemUser()
}

// Validate confere os campos obrigatórios
func (u *User) Validate() error {
	var field string
	switch {
	case u.Email.String() == "":
		field = "email"
	case u.FullName == "":
		field = "full_name"
	case u.UserType != UserTypeSystem && u.UserType != UserTypeWebsite:
		field = "user_type"
	default:
		return nil
	}
	return errors.WithParams(errors.ErrInvalidInput, map[string]interface{}{"Fields": field})
}
