package entities

import (
	"time"

	domainerrors "github.com/rafabene/access-admin/internal/domain/errors"
)

// PermissionDetail é um par (tipo permitido, valor) declarado em um PermissionManager
type PermissionDetail struct {
	ID                 string
	Idx                int
	Allow              string
	ForValue           string
	ApplicableFor      string
	ApplyToAllDocTypes bool
	IsDefault          bool
	HideDescendants    bool
}

// DetailKey identifica unicamente um detalhe dentro de um manager
type DetailKey struct {
	Allow         string
	ForValue      string
	ApplicableFor string
}

// Key retorna a chave de unicidade do detalhe
func (d PermissionDetail) Key() DetailKey {
	return DetailKey{Allow: d.Allow, ForValue: d.ForValue, ApplicableFor: d.ApplicableFor}
}

// Applicable indica se o detalhe gera uma permissão (tipo e valor preenchidos)
func (d PermissionDetail) Applicable() bool {
	return d.Allow != "" && d.ForValue != ""
}

// PermissionManager gera e reconcilia permissões de usuário de forma declarativa
type PermissionManager struct {
	ID              string
	ManagerName     string
	AliasName       string
	Description     string
	UserField       string // usuário alvo (email)
	ApplyToAllUsers bool
	IsActive        bool
	Details         []PermissionDetail
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsNew indica se o manager ainda não foi persistido
func (m *PermissionManager) IsNew() bool {
	return m.ID == ""
}

// DisplayName retorna o alias quando definido, ou o nome do manager
func (m *PermissionManager) DisplayName() string {
	if m.AliasName != "" {
		return m.AliasName
	}
	return m.ManagerName
}

// HasTarget indica se o manager possui algum usuário alvo configurado
func (m *PermissionManager) HasTarget() bool {
	return m.UserField != "" || m.ApplyToAllUsers
}

// Validate valida regras de negócio do manager
func (m *PermissionManager) Validate() error {
	if len(m.Details) == 0 {
		return domainerrors.ErrManagerWithoutDetails
	}

	seen := make(map[DetailKey]struct{}, len(m.Details))
	for _, d := range m.Details {
		key := d.Key()
		if _, dup := seen[key]; dup {
			return domainerrors.WithParams(domainerrors.ErrDuplicateDetail, map[string]interface{}{
				"Allow":    d.Allow,
				"ForValue": d.ForValue,
			})
		}
		seen[key] = struct{}{}
	}

	return nil
}

// DetailsEqual compara as listas de detalhes (ordem e conteúdo, ignorando IDs)
func (m *PermissionManager) DetailsEqual(other []PermissionDetail) bool {
	if len(m.Details) != len(other) {
		return false
	}
	for i := range m.Details {
		a, b := m.Details[i], other[i]
		a.ID, b.ID = "", ""
		a.Idx, b.Idx = 0, 0
		if a != b {
			return false
		}
	}
	return true
}
