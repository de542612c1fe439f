package relational

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate cria ou atualiza o schema completo. Deve rodar uma vez antes de o serviço
// aceitar requisições (startup da API ou `rolectl migrate`), incluindo a coluna
// permission_manager_id de user_permissions usada para rastrear as linhas gerenciadas.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&UserModel{},
		&RoleModel{},
		&DocTypeModel{},
		&DocPermissionModel{},
		&PermissionManagerModel{},
		&PermissionManagerDetailModel{},
		&UserPermissionModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
