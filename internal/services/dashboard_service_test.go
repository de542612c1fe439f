package services_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/access-admin/internal/domain/entities"
	"github.com/rafabene/access-admin/internal/infrastructure/persistence/relational"
	"github.com/rafabene/access-admin/internal/services"
)

var _ = Describe("DashboardService", func() {
	var (
		ctx       context.Context
		dashboard *services.DashboardService
	)

	BeforeEach(func() {
		ctx = context.Background()
		db := newTestDB()
		uow := relational.NewUnitOfWork(db)
		userRepo := relational.NewUserRepository(db)

		roles := services.NewRoleService(
			relational.NewRoleRepository(db),
			relational.NewDocPermissionRepository(db),
			relational.NewDocTypeRepository(db),
			uow,
			newTestCache(),
			newTestLogger(),
		)
		managers := services.NewPermissionManagerService(
			relational.NewPermissionManagerRepository(db),
			relational.NewUserPermissionRepository(db),
			userRepo,
			uow,
			newTestCache(),
			&recordingNotifier{},
			newTestLogger(),
		)
		dashboard = services.NewDashboardService(roles, managers, userRepo)

		Expect(relational.NewRoleRepository(db).Create(ctx, &entities.Role{Name: "Guest"})).To(Succeed())
		seedUser(ctx, db, "alice@example.com", entities.UserTypeSystem, true)
		seedUser(ctx, db, "web@example.com", entities.UserTypeWebsite, true)

		_, err := managers.CreateManager(ctx, services.ManagerInput{
			ManagerName: "Inactive Manager",
			Details:     []services.PermissionDetailInput{{Allow: "Company", ForValue: "Acme"}},
		})
		Expect(err).NotTo(HaveOccurred())
	})

	It("monta o contexto de roles", func() {
		page, err := dashboard.RolesContext(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(page.TitleKey).To(Equal("dashboard.roles.title"))
		Expect(page.Roles).To(HaveLen(1))
		Expect(page.Roles[0].Name).To(Equal("Guest"))
	})

	It("monta o contexto de managers com inativos e usuários de sistema", func() {
		page, err := dashboard.ManagersContext(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(page.TitleKey).To(Equal("dashboard.managers.title"))
		Expect(page.Managers).To(HaveLen(1))
		Expect(page.Managers[0].IsActive).To(BeFalse())
		Expect(page.Managers[0].PermissionCount).To(Equal(1))
		Expect(page.Stats.InactiveManagers).To(Equal(int64(1)))
		Expect(page.Users).To(HaveLen(1))
		Expect(page.Users[0].Email.String()).To(Equal("alice@example.com"))
	})
})
