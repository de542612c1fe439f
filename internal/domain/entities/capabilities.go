package entities

// Capabilities agrupa as flags booleanas de uma linha de permissão
type Capabilities struct {
	Read               bool `json:"read"`
	Write              bool `json:"write"`
	Create             bool `json:"create"`
	Delete             bool `json:"delete"`
	Submit             bool `json:"submit"`
	Cancel             bool `json:"cancel"`
	Amend              bool `json:"amend"`
	Report             bool `json:"report"`
	Export             bool `json:"export"`
	Import             bool `json:"import"`
	SetUserPermissions bool `json:"set_user_permissions"`
	Share              bool `json:"share"`
	Print              bool `json:"print"`
	Email              bool `json:"email"`
	Select             bool `json:"select"`
	IfOwner            bool `json:"if_owner"`
}

// Or retorna a combinação (OU lógico) campo a campo de c e o
func (c Capabilities) Or(o Capabilities) Capabilities {
	return Capabilities{
		Read:               c.Read || o.Read,
		Write:              c.Write || o.Write,
		Create:             c.Create || o.Create,
		Delete:             c.Delete || o.Delete,
		Submit:             c.Submit || o.Submit,
		Cancel:             c.Cancel || o.Cancel,
		Amend:              c.Amend || o.Amend,
		Report:             c.Report || o.Report,
		Export:             c.Export || o.Export,
		Import:             c.Import || o.Import,
		SetUserPermissions: c.SetUserPermissions || o.SetUserPermissions,
		Share:              c.Share || o.Share,
		Print:              c.Print || o.Print,
		Email:              c.Email || o.Email,
		Select:             c.Select || o.Select,
		IfOwner:            c.IfOwner || o.IfOwner,
	}
}

// IsZero indica se nenhuma capacidade está habilitada
func (c Capabilities) IsZero() bool {
	return c == Capabilities{}
}
