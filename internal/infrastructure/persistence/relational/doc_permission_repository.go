package relational

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/rafabene/access-admin/internal/domain/entities"
	"github.com/rafabene/access-admin/internal/domain/repositories"
)

// DocPermissionRepository implementa repositories.DocPermissionRepository
type DocPermissionRepository struct {
	db *gorm.DB
}

// NewDocPermissionRepository cria um novo DocPermissionRepository
func NewDocPermissionRepository(db *gorm.DB) repositories.DocPermissionRepository {
	return &DocPermissionRepository{db: db}
}

func (r *DocPermissionRepository) Create(ctx context.Context, perm *entities.DocPermission) error {
	model := toDocPermissionModel(perm)
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return err
	}
	perm.ID = model.ID
	perm.CreatedAt = time.Unix(model.CreatedAt, 0)
	return nil
}

func (r *DocPermissionRepository) ListByRole(ctx context.Context, role string) ([]*entities.DocPermission, error) {
	var models []*DocPermissionModel
	err := dbFromContext(ctx, r.db).
		Where("role = ?", role).
		Order("parent").Order("perm_level").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	perms := make([]*entities.DocPermission, 0, len(models))
	for _, m := range models {
		perms = append(perms, toDocPermissionEntity(m))
	}
	return perms, nil
}

type sourceCount struct {
	Role   string
	Source string
	Total  int64
}

func (r *DocPermissionRepository) CountByRole(ctx context.Context, role string) (int64, int64, error) {
	var rows []sourceCount
	err := dbFromContext(ctx, r.db).Model(&DocPermissionModel{}).
		Select("role, source, COUNT(*) AS total").
		Where("role = ?", role).
		Group("role, source").
		Scan(&rows).Error
	if err != nil {
		return 0, 0, err
	}

	counts := foldCounts(rows)[role]
	return counts.Standard, counts.Custom, nil
}

func (r *DocPermissionRepository) CountAllByRole(ctx context.Context) (map[string]repositories.PermissionCounts, error) {
	var rows []sourceCount
	err := dbFromContext(ctx, r.db).Model(&DocPermissionModel{}).
		Select("role, source, COUNT(*) AS total").
		Group("role, source").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return foldCounts(rows), nil
}

func foldCounts(rows []sourceCount) map[string]repositories.PermissionCounts {
	result := make(map[string]repositories.PermissionCounts)
	for _, row := range rows {
		c := result[row.Role]
		if row.Source == string(entities.PermissionSourceCustom) {
			c.Custom += row.Total
		} else {
			c.Standard += row.Total
		}
		result[row.Role] = c
	}
	return result
}

// Conversores
func toDocPermissionModel(p *entities.DocPermission) *DocPermissionModel {
	source := p.Source
	if source == "" {
		source = entities.PermissionSourceStandard
	}
	c := p.Capabilities
	return &DocPermissionModel{
		ID:                    p.ID,
		Role:                  p.Role,
		Parent:                p.Parent,
		PermLevel:             p.PermLevel,
		Source:                string(source),
		CanRead:               c.Read,
		CanWrite:              c.Write,
		CanCreate:             c.Create,
		CanDelete:             c.Delete,
		CanSubmit:             c.Submit,
		CanCancel:             c.Cancel,
		CanAmend:              c.Amend,
		CanReport:             c.Report,
		CanExport:             c.Export,
		CanImport:             c.Import,
		CanSetUserPermissions: c.SetUserPermissions,
		CanShare:              c.Share,
		CanPrint:              c.Print,
		CanEmail:              c.Email,
		CanSelect:             c.Select,
		IfOwner:               c.IfOwner,
	}
}

func toDocPermissionEntity(m *DocPermissionModel) *entities.DocPermission {
	return &entities.DocPermission{
		ID:        m.ID,
		Role:      m.Role,
		Parent:    m.Parent,
		PermLevel: m.PermLevel,
		Source:    entities.PermissionSource(m.Source),
		Capabilities: entities.Capabilities{
			Read:               m.CanRead,
			Write:              m.CanWrite,
			Create:             m.CanCreate,
			Delete:             m.CanDelete,
			Submit:             m.CanSubmit,
			Cancel:             m.CanCancel,
			Amend:              m.CanAmend,
			Report:             m.CanReport,
			Export:             m.CanExport,
			Import:             m.CanImport,
			SetUserPermissions: m.CanSetUserPermissions,
			Share:              m.CanShare,
			Print:              m.CanPrint,
			Email:              m.CanEmail,
			Select:             m.CanSelect,
			IfOwner:            m.IfOwner,
		},
		CreatedAt: time.Unix(m.CreatedAt, 0),
	}
}
