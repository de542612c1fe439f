package entities

import "time"

// UserPermission restringe os valores visíveis de um usuário para um tipo de entidade
type UserPermission struct {
	ID              string
	User            string
	Allow           string
	ForValue        string
	ApplicableFor   string
	ApplyToAll      bool
	IsDefault       bool
	HideDescendants bool
	// ManagerID referencia o PermissionManager dono da linha; vazio para linhas manuais
	ManagerID string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsManaged indica se a linha foi criada por um PermissionManager
func (p *UserPermission) IsManaged() bool {
	return p.ManagerID != ""
}

// DeletionBlockedBy indica se a remoção manual da linha deve ser recusada:
// a linha pertence ao manager informado e ele está ativo.
func (p *UserPermission) DeletionBlockedBy(manager *PermissionManager) bool {
	if !p.IsManaged() || manager == nil {
		return false
	}
	return manager.ID == p.ManagerID && manager.IsActive
}

// ApplyDetail copia os valores de um detalhe para a linha e a marca com o manager
func (p *UserPermission) ApplyDetail(managerID string, d PermissionDetail) {
	p.Allow = d.Allow
	p.ForValue = d.ForValue
	p.ApplicableFor = d.ApplicableFor
	p.ApplyToAll = d.ApplyToAllDocTypes
	p.IsDefault = d.IsDefault
	p.HideDescendants = d.HideDescendants
	p.ManagerID = managerID
}
