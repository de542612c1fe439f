package services_test

import (
	"context"
	stderrors "errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/rafabene/access-admin/internal/domain/entities"
	domainerrors "github.com/rafabene/access-admin/internal/domain/errors"
	"github.com/rafabene/access-admin/internal/domain/repositories"
	"github.com/rafabene/access-admin/internal/infrastructure/persistence/relational"
	"github.com/rafabene/access-admin/internal/services"
)

// failingPermRepo falha ao gravar linhas de uma entidade específica
type failingPermRepo struct {
	repositories.DocPermissionRepository
	failFor string
}

func (r *failingPermRepo) Create(ctx context.Context, perm *entities.DocPermission) error {
	if err := r.DocPermissionRepository.Create(ctx, perm); err != nil {
		return err
	}
	if perm.Parent == r.failFor {
		// a linha já foi gravada: o savepoint precisa desfazê-la
		return stderrors.New("constraint violated")
	}
	return nil
}

// racingRoleRepo simula outra duplicação que criou o destino após a checagem
type racingRoleRepo struct {
	repositories.RoleRepository
}

func (r *racingRoleRepo) Exists(context.Context, string) (bool, error) {
	return false, nil
}

var _ = Describe("RoleService", func() {
	var (
		ctx      context.Context
		db       *gorm.DB
		roles    repositories.RoleRepository
		perms    repositories.DocPermissionRepository
		docTypes repositories.DocTypeRepository
		service  *services.RoleService
	)

	seedRole := func(role *entities.Role) {
		Expect(roles.Create(ctx, role)).To(Succeed())
	}

	seedDocTypes := func(names ...string) {
		for _, name := range names {
			Expect(docTypes.Create(ctx, &entities.DocType{Name: name})).To(Succeed())
		}
	}

	seedPermission := func(role, parent string, level int, caps entities.Capabilities) {
		Expect(perms.Create(ctx, &entities.DocPermission{
			Role:         role,
			Parent:       parent,
			PermLevel:    level,
			Source:       entities.PermissionSourceStandard,
			Capabilities: caps,
		})).To(Succeed())
	}

	newService := func(permRepo repositories.DocPermissionRepository) *services.RoleService {
		return services.NewRoleService(
			roles,
			permRepo,
			docTypes,
			relational.NewUnitOfWork(db),
			newTestCache(),
			newTestLogger(),
		)
	}

	BeforeEach(func() {
		ctx = context.Background()
		db = newTestDB()
		roles = relational.NewRoleRepository(db)
		perms = relational.NewDocPermissionRepository(db)
		docTypes = relational.NewDocTypeRepository(db)
		service = newService(perms)
	})

	Describe("DuplicateRole", func() {
		BeforeEach(func() {
			seedRole(&entities.Role{Name: "Sales User", DeskAccess: true, TwoFactorAuth: true})
			seedDocTypes("Employee", "Sales Order")
		})

		It("combina as linhas de uma entidade com OU lógico", func() {
			seedPermission("Sales User", "Employee", 0, entities.Capabilities{Read: true})
			seedPermission("Sales User", "Employee", 0, entities.Capabilities{Write: true})

			result, err := service.DuplicateRole(ctx, services.DuplicateRoleInput{
				SourceRole:      "Sales User",
				NewRoleName:     "Sales User Copy",
				CopyPermissions: true,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.PermissionsCreated).To(Equal(1))
			Expect(result.FailedPermissions).To(BeEmpty())

			rows, err := perms.ListByRole(ctx, "Sales User Copy")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Parent).To(Equal("Employee"))
			Expect(rows[0].Capabilities.Read).To(BeTrue())
			Expect(rows[0].Capabilities.Write).To(BeTrue())
			Expect(rows[0].Capabilities.Delete).To(BeFalse())
		})

		It("copia os campos do role de origem", func() {
			_, err := service.DuplicateRole(ctx, services.DuplicateRoleInput{
				SourceRole:  "Sales User",
				NewRoleName: "Sales Clone",
			})
			Expect(err).NotTo(HaveOccurred())

			role, err := roles.FindByName(ctx, "Sales Clone")
			Expect(err).NotTo(HaveOccurred())
			Expect(role).NotTo(BeNil())
			Expect(role.DeskAccess).To(BeTrue())
			Expect(role.TwoFactorAuth).To(BeTrue())
		})

		It("não copia permissões quando não solicitado", func() {
			seedPermission("Sales User", "Employee", 0, entities.Capabilities{Read: true})

			result, err := service.DuplicateRole(ctx, services.DuplicateRoleInput{
				SourceRole:  "Sales User",
				NewRoleName: "Empty Sales",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.PermissionsCreated).To(BeZero())

			rows, err := perms.ListByRole(ctx, "Empty Sales")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(BeEmpty())
		})

		It("registra entidades inexistentes como falha e conclui a duplicação", func() {
			seedPermission("Sales User", "Employee", 0, entities.Capabilities{Read: true})
			seedPermission("Sales User", "Ghost", 0, entities.Capabilities{Read: true})

			result, err := service.DuplicateRole(ctx, services.DuplicateRoleInput{
				SourceRole:      "Sales User",
				NewRoleName:     "Partial Sales",
				CopyPermissions: true,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.PermissionsCreated).To(Equal(1))
			Expect(result.TotalPermissions).To(Equal(2))
			Expect(result.FailedPermissions).To(ConsistOf("Ghost - entity type not found"))
			Expect(result.Partial()).To(BeTrue())
		})

		It("desfaz apenas a linha que falhou", func() {
			seedPermission("Sales User", "Employee", 0, entities.Capabilities{Read: true})
			seedPermission("Sales User", "Sales Order", 0, entities.Capabilities{Read: true})

			service = newService(&failingPermRepo{DocPermissionRepository: perms, failFor: "Sales Order"})

			result, err := service.DuplicateRole(ctx, services.DuplicateRoleInput{
				SourceRole:      "Sales User",
				NewRoleName:     "Savepoint Sales",
				CopyPermissions: true,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.PermissionsCreated).To(Equal(1))
			Expect(result.FailedPermissions).To(ConsistOf("Sales Order - constraint violated"))

			rows, err := perms.ListByRole(ctx, "Savepoint Sales")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Parent).To(Equal("Employee"))
		})

		It("recusa um nome de destino existente", func() {
			seedRole(&entities.Role{Name: "Accounts User"})

			_, err := service.DuplicateRole(ctx, services.DuplicateRoleInput{
				SourceRole:  "Sales User",
				NewRoleName: "Accounts User",
			})
			Expect(err).To(MatchError(domainerrors.ErrRoleAlreadyExists))
		})

		It("a chave primária decide duplicações concorrentes para o mesmo nome", func() {
			seedRole(&entities.Role{Name: "Accounts User"})

			racing := services.NewRoleService(
				&racingRoleRepo{RoleRepository: roles},
				perms,
				docTypes,
				relational.NewUnitOfWork(db),
				newTestCache(),
				newTestLogger(),
			)
			_, err := racing.DuplicateRole(ctx, services.DuplicateRoleInput{
				SourceRole:  "Sales User",
				NewRoleName: "Accounts User",
			})
			Expect(err).To(MatchError(domainerrors.ErrRoleAlreadyExists))

			key, params, ok := domainerrors.MessageID(err)
			Expect(ok).To(BeTrue())
			Expect(key).To(Equal("error.role_already_exists"))
			Expect(params).To(HaveKeyWithValue("Role", "Accounts User"))
		})

		It("recusa origem igual ao destino", func() {
			_, err := service.DuplicateRole(ctx, services.DuplicateRoleInput{
				SourceRole:  "Sales User",
				NewRoleName: "Sales User",
			})
			Expect(err).To(MatchError(domainerrors.ErrSameRoleName))
		})

		It("recusa nomes vazios", func() {
			_, err := service.DuplicateRole(ctx, services.DuplicateRoleInput{SourceRole: "Sales User"})
			Expect(err).To(MatchError(domainerrors.ErrRoleNameRequired))
		})

		It("recusa origem inexistente sem criar o destino", func() {
			_, err := service.DuplicateRole(ctx, services.DuplicateRoleInput{
				SourceRole:  "Nobody",
				NewRoleName: "Somebody",
			})
			Expect(err).To(MatchError(domainerrors.ErrRoleNotFound))

			exists, err := roles.Exists(ctx, "Somebody")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})
	})

	Describe("PreviewRolePermissions", func() {
		It("retorna as linhas combinadas sem gravar", func() {
			seedRole(&entities.Role{Name: "HR User"})
			seedPermission("HR User", "Employee", 1, entities.Capabilities{Read: true})
			seedPermission("HR User", "Employee", 0, entities.Capabilities{Export: true})

			preview, err := service.PreviewRolePermissions(ctx, "HR User")
			Expect(err).NotTo(HaveOccurred())
			Expect(preview).To(HaveLen(1))
			Expect(preview[0].PermLevel).To(Equal(0))
			Expect(preview[0].SourceRows).To(Equal(2))
			Expect(preview[0].Capabilities.Read).To(BeTrue())
			Expect(preview[0].Capabilities.Export).To(BeTrue())

			summary, err := service.GetAllRolesSummary(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary).To(HaveLen(1))
		})
	})

	Describe("BulkDuplicateRoles", func() {
		It("processa cada item de forma independente", func() {
			seedRole(&entities.Role{Name: "Stock User"})

			results := service.BulkDuplicateRoles(ctx, []services.DuplicateRoleInput{
				{SourceRole: "Missing", NewRoleName: "Whatever"},
				{SourceRole: "Stock User", NewRoleName: "Stock Copy"},
			})
			Expect(results).To(HaveLen(2))
			Expect(results[0].Err).To(MatchError(domainerrors.ErrRoleNotFound))
			Expect(results[1].Err).NotTo(HaveOccurred())
			Expect(results[1].Result.NewRole).To(Equal("Stock Copy"))
		})
	})

	Describe("GetAllRolesSummary e GetRoleDetails", func() {
		It("conta permissões padrão e customizadas", func() {
			seedRole(&entities.Role{Name: "Projects User"})
			seedDocTypes("Project")
			seedPermission("Projects User", "Project", 0, entities.Capabilities{Read: true})
			Expect(perms.Create(ctx, &entities.DocPermission{
				Role:         "Projects User",
				Parent:       "Project",
				Source:       entities.PermissionSourceCustom,
				Capabilities: entities.Capabilities{Write: true},
			})).To(Succeed())

			summary, err := service.GetAllRolesSummary(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary).To(HaveLen(1))
			Expect(summary[0].PermissionCount).To(Equal(int64(2)))
			Expect(summary[0].DocTypePermissions).To(Equal(int64(1)))
			Expect(summary[0].CustomPermissions).To(Equal(int64(1)))

			details, err := service.GetRoleDetails(ctx, "Projects User")
			Expect(err).NotTo(HaveOccurred())
			Expect(details.TotalPermissions).To(Equal(2))
			Expect(details.DocTypePermissions).To(HaveLen(1))
			Expect(details.CustomPermissions).To(HaveLen(1))
		})

		It("retorna erro para role inexistente", func() {
			_, err := service.GetRoleDetails(ctx, "Ghost Role")
			Expect(err).To(MatchError(domainerrors.ErrRoleNotFound))
		})
	})
})
