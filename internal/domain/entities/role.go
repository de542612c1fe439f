package entities

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidRoleData = errors.New("invalid role data")
)

// Role representa um papel (conjunto nomeado de capacidades) atribuível a usuários
type Role struct {
	Name             string
	Disabled         bool
	DeskAccess       bool
	TwoFactorAuth    bool
	RestrictToDomain string
	IsCustom         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// roleFieldCopy descreve um campo copiado na duplicação de um role
type roleFieldCopy struct {
	Field string
	Copy  func(dst, src *Role)
}

// duplicatedRoleFields é a tabela de campos copiados do role de origem
var duplicatedRoleFields = []roleFieldCopy{
	{Field: "disabled", Copy: func(dst, src *Role) { dst.Disabled = src.Disabled }},
	{Field: "desk_access", Copy: func(dst, src *Role) { dst.DeskAccess = src.DeskAccess }},
	{Field: "two_factor_auth", Copy: func(dst, src *Role) { dst.TwoFactorAuth = src.TwoFactorAuth }},
	{Field: "restrict_to_domain", Copy: func(dst, src *Role) { dst.RestrictToDomain = src.RestrictToDomain }},
	{Field: "is_custom", Copy: func(dst, src *Role) { dst.IsCustom = src.IsCustom }},
}

// DuplicatedRoleFields retorna os nomes dos campos copiados na duplicação
func DuplicatedRoleFields() []string {
	names := make([]string, len(duplicatedRoleFields))
	for i, f := range duplicatedRoleFields {
		names[i] = f.Field
	}
	return names
}

// DuplicateAs cria um novo role com o nome informado e os campos copiados deste
func (r *Role) DuplicateAs(name string) *Role {
	dup := &Role{Name: name}
	for _, f := range duplicatedRoleFields {
		f.Copy(dup, r)
	}
	return dup
}

// Validate valida regras de negócio da entidade Role
func (r *Role) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("role name is required")
	}
	return nil
}
