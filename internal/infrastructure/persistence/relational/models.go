package relational

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel é o model GORM para usuários
type UserModel struct {
	ID        string `gorm:"type:varchar(36);primaryKey"`
	Email     string `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName  string `gorm:"type:varchar(500);not null"`
	Enabled   bool   `gorm:"not null;default:false"`
	UserType  string `gorm:"type:varchar(50);not null;index"`
	CreatedAt int64  `gorm:"autoCreateTime;index"`
	UpdatedAt int64  `gorm:"autoUpdateTime"`
}

func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate gera o UUID quando não informado
func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// RoleModel é o model GORM para roles
type RoleModel struct {
	Name             string `gorm:"type:varchar(140);primaryKey"`
	Disabled         bool   `gorm:"not null;default:false"`
	DeskAccess       bool   `gorm:"not null;default:false"`
	TwoFactorAuth    bool   `gorm:"not null;default:false"`
	RestrictToDomain string `gorm:"type:varchar(140)"`
	IsCustom         bool   `gorm:"not null;default:false"`
	CreatedAt        int64  `gorm:"autoCreateTime"`
	UpdatedAt        int64  `gorm:"autoUpdateTime"`
}

func (RoleModel) TableName() string {
	return "roles"
}

// DocTypeModel é o registro de tipos de entidade
type DocTypeModel struct {
	Name     string `gorm:"type:varchar(140);primaryKey"`
	IsSingle bool   `gorm:"not null;default:false"`
	IsTable  bool   `gorm:"not null;default:false"`
	Custom   bool   `gorm:"not null;default:false"`
}

func (DocTypeModel) TableName() string {
	return "doc_types"
}

// DocPermissionModel é uma linha de permissão de role sobre um tipo de entidade.
// As colunas usam o prefixo can_ para evitar palavras reservadas (select, delete...).
type DocPermissionModel struct {
	ID                    string `gorm:"type:varchar(36);primaryKey"`
	Role                  string `gorm:"type:varchar(140);not null;index"`
	Parent                string `gorm:"type:varchar(140);not null;index"`
	PermLevel             int    `gorm:"not null;default:0"`
	Source                string `gorm:"type:varchar(20);not null;default:'standard';index"`
	CanRead               bool   `gorm:"not null;default:false"`
	CanWrite              bool   `gorm:"not null;default:false"`
	CanCreate             bool   `gorm:"not null;default:false"`
	CanDelete             bool   `gorm:"not null;default:false"`
	CanSubmit             bool   `gorm:"not null;default:false"`
	CanCancel             bool   `gorm:"not null;default:false"`
	CanAmend              bool   `gorm:"not null;default:false"`
	CanReport             bool   `gorm:"not null;default:false"`
	CanExport             bool   `gorm:"not null;default:false"`
	CanImport             bool   `gorm:"not null;default:false"`
	CanSetUserPermissions bool   `gorm:"not null;default:false"`
	CanShare              bool   `gorm:"not null;default:false"`
	CanPrint              bool   `gorm:"not null;default:false"`
	CanEmail              bool   `gorm:"not null;default:false"`
	CanSelect             bool   `gorm:"not null;default:false"`
	IfOwner               bool   `gorm:"not null;default:false"`
	CreatedAt             int64  `gorm:"autoCreateTime"`
}

func (DocPermissionModel) TableName() string {
	return "doc_permissions"
}

// BeforeCreate gera o UUID quando não informado
func (m *DocPermissionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// PermissionManagerModel é o model GORM para os gerenciadores de permissão
type PermissionManagerModel struct {
	ID              string                         `gorm:"type:varchar(36);primaryKey"`
	ManagerName     string                         `gorm:"type:varchar(140);uniqueIndex;not null"`
	AliasName       string                         `gorm:"type:varchar(140)"`
	Description     string                         `gorm:"type:text"`
	UserField       string                         `gorm:"type:varchar(255);index"`
	ApplyToAllUsers bool                           `gorm:"not null;default:false"`
	IsActive        bool                           `gorm:"not null;default:false;index"`
	CreatedAt       int64                          `gorm:"autoCreateTime"`
	UpdatedAt       int64                          `gorm:"autoUpdateTime"`
	Details         []PermissionManagerDetailModel `gorm:"foreignKey:ManagerID;constraint:OnDelete:CASCADE"`
}

func (PermissionManagerModel) TableName() string {
	return "permission_managers"
}

// BeforeCreate gera o UUID quando não informado
func (m *PermissionManagerModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// PermissionManagerDetailModel é um detalhe (tipo permitido, valor) de um manager
type PermissionManagerDetailModel struct {
	ID                 string `gorm:"type:varchar(36);primaryKey"`
	ManagerID          string `gorm:"type:varchar(36);not null;uniqueIndex:idx_manager_detail"`
	Idx                int    `gorm:"not null;default:0"`
	Allow              string `gorm:"type:varchar(140);not null;uniqueIndex:idx_manager_detail"`
	ForValue           string `gorm:"type:varchar(140);not null;uniqueIndex:idx_manager_detail"`
	ApplicableFor      string `gorm:"type:varchar(140);not null;default:'';uniqueIndex:idx_manager_detail"`
	ApplyToAllDocTypes bool   `gorm:"not null;default:false"`
	IsDefault          bool   `gorm:"not null;default:false"`
	HideDescendants    bool   `gorm:"not null;default:false"`
}

func (PermissionManagerDetailModel) TableName() string {
	return "permission_manager_details"
}

// BeforeCreate gera o UUID quando não informado
func (m *PermissionManagerDetailModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// UserPermissionModel é o model GORM para permissões de usuário
type UserPermissionModel struct {
	ID                  string  `gorm:"type:varchar(36);primaryKey"`
	UserEmail           string  `gorm:"type:varchar(255);not null;index"`
	Allow               string  `gorm:"type:varchar(140);not null;index"`
	ForValue            string  `gorm:"type:varchar(140);not null"`
	ApplicableFor       *string `gorm:"type:varchar(140)"`
	ApplyToAll          bool    `gorm:"not null;default:false"`
	IsDefault           bool    `gorm:"not null;default:false"`
	HideDescendants     bool    `gorm:"not null;default:false"`
	PermissionManagerID *string `gorm:"type:varchar(36);index"`
	CreatedAt           int64   `gorm:"autoCreateTime"`
	UpdatedAt           int64   `gorm:"autoUpdateTime"`
}

func (UserPermissionModel) TableName() string {
	return "user_permissions"
}

// BeforeCreate gera o UUID quando não informado
func (m *UserPermissionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
