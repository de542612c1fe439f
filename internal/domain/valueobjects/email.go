package valueobjects

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rafabene/access-admin/internal/domain/errors"
)

var validate = validator.New()

// Email identifica um usuário; sempre minúsculo e sem espaços
type Email struct {
	value string
}

// NewEmail normaliza e valida um endereço.
// Endereço inválido retorna errors.ErrInvalidEmail com o valor recebido.
func NewEmail(email string) (Email, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if err := validate.Var(email, "required,max=254,email"); err != nil {
		return Email{}, errors.WithParams(errors.ErrInvalidEmail, map[string]interface{}{"Email": email})
	}

	return Email{value: email}, nil
}

// String retorna o valor do email
func (e Email) String() string {
	return e.value
}
