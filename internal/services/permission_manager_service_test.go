package services_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/rafabene/access-admin/internal/domain/entities"
	domainerrors "github.com/rafabene/access-admin/internal/domain/errors"
	"github.com/rafabene/access-admin/internal/domain/ports"
	"github.com/rafabene/access-admin/internal/domain/repositories"
	"github.com/rafabene/access-admin/internal/infrastructure/persistence/relational"
	"github.com/rafabene/access-admin/internal/services"
)

// racingManagerRepo simula outra requisição que gravou o mesmo nome após a checagem
type racingManagerRepo struct {
	repositories.PermissionManagerRepository
}

func (r *racingManagerRepo) FindByName(context.Context, string) (*entities.PermissionManager, error) {
	return nil, nil
}

var _ = Describe("PermissionManagerService", func() {
	var (
		ctx         context.Context
		db          *gorm.DB
		userPerms   repositories.UserPermissionRepository
		managerRepo repositories.PermissionManagerRepository
		notifier    *recordingNotifier
		service     *services.PermissionManagerService
		guard       *services.UserPermissionService
	)

	companyInput := func(user string) services.ManagerInput {
		return services.ManagerInput{
			ManagerName: "Company Access",
			UserField:   user,
			IsActive:    true,
			Details: []services.PermissionDetailInput{
				{Allow: "Company", ForValue: "Acme"},
				{Allow: "Cost Center", ForValue: "Main"},
			},
		}
	}

	permissionKeys := func(user string) []string {
		rows, err := userPerms.ListByUser(ctx, user)
		Expect(err).NotTo(HaveOccurred())
		keys := make([]string, 0, len(rows))
		for _, r := range rows {
			keys = append(keys, r.Allow+"="+r.ForValue)
		}
		return keys
	}

	BeforeEach(func() {
		ctx = context.Background()
		db = newTestDB()
		userPerms = relational.NewUserPermissionRepository(db)
		managerRepo = relational.NewPermissionManagerRepository(db)
		notifier = &recordingNotifier{}

		uow := relational.NewUnitOfWork(db)
		service = services.NewPermissionManagerService(
			managerRepo,
			userPerms,
			relational.NewUserRepository(db),
			uow,
			newTestCache(),
			notifier,
			newTestLogger(),
		)
		guard = services.NewUserPermissionService(userPerms, managerRepo, uow, newTestCache(), newTestLogger())

		seedUser(ctx, db, "alice@example.com", entities.UserTypeSystem, true)
		seedUser(ctx, db, "bob@example.com", entities.UserTypeSystem, true)
		seedUser(ctx, db, "carol@example.com", entities.UserTypeSystem, false)
		seedUser(ctx, db, "dave@example.com", entities.UserTypeWebsite, true)
	})

	Describe("CreateManager", func() {
		It("cria uma permissão por detalhe para o usuário alvo", func() {
			result, err := service.CreateManager(ctx, companyInput("alice@example.com"))
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Synced).To(BeTrue())
			Expect(result.Manager.ID).NotTo(BeEmpty())

			Expect(permissionKeys("alice@example.com")).To(ConsistOf("Company=Acme", "Cost Center=Main"))

			rows, err := userPerms.ListByManager(ctx, result.Manager.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
		})

		It("não cria permissões para manager inativo", func() {
			input := companyInput("alice@example.com")
			input.IsActive = false

			result, err := service.CreateManager(ctx, input)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Synced).To(BeFalse())
			Expect(permissionKeys("alice@example.com")).To(BeEmpty())
		})

		It("aplica a todos os usuários de sistema habilitados", func() {
			input := companyInput("")
			input.ApplyToAllUsers = true

			_, err := service.CreateManager(ctx, input)
			Expect(err).NotTo(HaveOccurred())

			Expect(permissionKeys("alice@example.com")).To(HaveLen(2))
			Expect(permissionKeys("bob@example.com")).To(HaveLen(2))
			Expect(permissionKeys("carol@example.com")).To(BeEmpty())
			Expect(permissionKeys("dave@example.com")).To(BeEmpty())
		})

		It("adota a permissão manual com a mesma combinação", func() {
			manual, err := guard.Create(ctx, services.UserPermissionInput{
				User:     "alice@example.com",
				Allow:    "Company",
				ForValue: "Acme",
			})
			Expect(err).NotTo(HaveOccurred())

			result, err := service.CreateManager(ctx, companyInput("alice@example.com"))
			Expect(err).NotTo(HaveOccurred())

			adopted, err := userPerms.FindByID(ctx, manual.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(adopted.ManagerID).To(Equal(result.Manager.ID))
			Expect(permissionKeys("alice@example.com")).To(HaveLen(2))
		})

		It("converte a violação do nome único em ErrManagerNameTaken", func() {
			_, err := service.CreateManager(ctx, companyInput("alice@example.com"))
			Expect(err).NotTo(HaveOccurred())

			racing := services.NewPermissionManagerService(
				&racingManagerRepo{PermissionManagerRepository: managerRepo},
				userPerms,
				relational.NewUserRepository(db),
				relational.NewUnitOfWork(db),
				newTestCache(),
				notifier,
				newTestLogger(),
			)
			_, err = racing.CreateManager(ctx, companyInput("bob@example.com"))
			Expect(err).To(MatchError(domainerrors.ErrManagerNameTaken))

			key, params, ok := domainerrors.MessageID(err)
			Expect(ok).To(BeTrue())
			Expect(key).To(Equal("error.manager_name_taken"))
			Expect(params).To(HaveKeyWithValue("Manager", "Company Access"))
		})

		It("recusa manager sem detalhes", func() {
			input := companyInput("alice@example.com")
			input.Details = nil

			_, err := service.CreateManager(ctx, input)
			Expect(err).To(MatchError(domainerrors.ErrManagerWithoutDetails))
		})

		It("recusa detalhes duplicados", func() {
			input := companyInput("alice@example.com")
			input.Details = append(input.Details, services.PermissionDetailInput{Allow: "Company", ForValue: "Acme"})

			_, err := service.CreateManager(ctx, input)
			Expect(err).To(MatchError(domainerrors.ErrDuplicateDetail))
		})

		It("recusa detalhe sem valor", func() {
			input := companyInput("alice@example.com")
			input.Details[0].ForValue = ""

			_, err := service.CreateManager(ctx, input)
			Expect(err).To(MatchError(domainerrors.ErrInvalidInput))

			_, params, ok := domainerrors.MessageID(err)
			Expect(ok).To(BeTrue())
			Expect(params["Fields"]).To(ContainSubstring("ForValue"))
		})

		It("recusa nome repetido", func() {
			_, err := service.CreateManager(ctx, companyInput("alice@example.com"))
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CreateManager(ctx, companyInput("bob@example.com"))
			Expect(err).To(MatchError(domainerrors.ErrManagerNameTaken))
		})
	})

	Describe("Sync", func() {
		It("é idempotente no conjunto de permissões", func() {
			result, err := service.CreateManager(ctx, companyInput("alice@example.com"))
			Expect(err).NotTo(HaveOccurred())
			first := permissionKeys("alice@example.com")

			Expect(service.Sync(ctx, result.Manager)).To(Succeed())
			Expect(service.Sync(ctx, result.Manager)).To(Succeed())

			Expect(permissionKeys("alice@example.com")).To(ConsistOf(first))
		})
	})

	Describe("UpdateManager", func() {
		var manager *entities.PermissionManager

		BeforeEach(func() {
			result, err := service.CreateManager(ctx, companyInput("alice@example.com"))
			Expect(err).NotTo(HaveOccurred())
			manager = result.Manager
		})

		It("ressincroniza quando os detalhes mudam", func() {
			input := companyInput("alice@example.com")
			input.Details[1].ForValue = "Branch"

			result, err := service.UpdateManager(ctx, manager.ID, input)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Synced).To(BeTrue())
			Expect(permissionKeys("alice@example.com")).To(ConsistOf("Company=Acme", "Cost Center=Branch"))
		})

		It("move as permissões quando o usuário alvo muda", func() {
			_, err := service.UpdateManager(ctx, manager.ID, companyInput("bob@example.com"))
			Expect(err).NotTo(HaveOccurred())

			Expect(permissionKeys("alice@example.com")).To(BeEmpty())
			Expect(permissionKeys("bob@example.com")).To(ConsistOf("Company=Acme", "Cost Center=Main"))
		})

		It("recria permissões removidas e emite um aviso", func() {
			rows, err := userPerms.ListByManager(ctx, manager.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(userPerms.Delete(ctx, rows[0].ID)).To(Succeed())

			result, err := service.UpdateManager(ctx, manager.ID, companyInput("alice@example.com"))
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Synced).To(BeFalse())
			Expect(result.MissingRecreated).To(Equal(1))
			Expect(permissionKeys("alice@example.com")).To(HaveLen(2))

			notices := notifier.Notices()
			Expect(notices).To(HaveLen(1))
			Expect(notices[0].Key).To(Equal("notice.missing_permissions_recreated"))
			Expect(notices[0].Level).To(Equal(ports.NoticeWarning))
			Expect(notices[0].Params).To(HaveKeyWithValue("Count", 1))
		})

		It("não emite aviso quando nada está ausente", func() {
			result, err := service.UpdateManager(ctx, manager.ID, companyInput("alice@example.com"))
			Expect(err).NotTo(HaveOccurred())
			Expect(result.MissingRecreated).To(BeZero())
			Expect(notifier.Notices()).To(BeEmpty())
		})

		It("mantém as permissões ao desativar", func() {
			input := companyInput("alice@example.com")
			input.IsActive = false

			_, err := service.UpdateManager(ctx, manager.ID, input)
			Expect(err).NotTo(HaveOccurred())
			Expect(permissionKeys("alice@example.com")).To(HaveLen(2))
		})

		It("retorna erro para manager inexistente", func() {
			_, err := service.UpdateManager(ctx, "missing", companyInput("alice@example.com"))
			Expect(err).To(MatchError(domainerrors.ErrManagerNotFound))
		})
	})

	Describe("DeleteManager", func() {
		It("remove as permissões do manager de todos os usuários", func() {
			result, err := service.CreateManager(ctx, companyInput("alice@example.com"))
			Expect(err).NotTo(HaveOccurred())
			Expect(service.ApplyToUser(ctx, result.Manager.ManagerName, "bob@example.com")).To(Succeed())

			_, err = guard.Create(ctx, services.UserPermissionInput{
				User:     "bob@example.com",
				Allow:    "Territory",
				ForValue: "North",
			})
			Expect(err).NotTo(HaveOccurred())

			_, removed, err := service.DeleteManager(ctx, result.Manager.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(removed).To(Equal(int64(4)))

			Expect(permissionKeys("alice@example.com")).To(BeEmpty())
			Expect(permissionKeys("bob@example.com")).To(ConsistOf("Territory=North"))

			deleted, err := managerRepo.FindByID(ctx, result.Manager.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeNil())
		})

		It("preserva a linha de outro manager ativo com o mesmo detalhe", func() {
			first, err := service.CreateManager(ctx, companyInput("alice@example.com"))
			Expect(err).NotTo(HaveOccurred())

			second := companyInput("alice@example.com")
			second.ManagerName = "Company Audit"
			second.Details = second.Details[:1]
			other, err := service.CreateManager(ctx, second)
			Expect(err).NotTo(HaveOccurred())

			report, err := service.CheckMissing(ctx, first.Manager.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.MissingCount).To(BeZero())
			Expect(permissionKeys("alice@example.com")).To(ConsistOf("Company=Acme", "Company=Acme", "Cost Center=Main"))

			_, removed, err := service.DeleteManager(ctx, other.Manager.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(removed).To(Equal(int64(1)))

			rows, err := userPerms.ListByManager(ctx, first.Manager.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
			Expect(permissionKeys("alice@example.com")).To(ConsistOf("Company=Acme", "Cost Center=Main"))
		})
	})

	Describe("proteção contra remoção", func() {
		var manager *entities.PermissionManager

		BeforeEach(func() {
			result, err := service.CreateManager(ctx, companyInput("alice@example.com"))
			Expect(err).NotTo(HaveOccurred())
			manager = result.Manager
		})

		It("recusa remover uma linha de manager ativo", func() {
			rows, err := userPerms.ListByManager(ctx, manager.ID)
			Expect(err).NotTo(HaveOccurred())

			err = guard.Delete(ctx, rows[0].ID)
			Expect(err).To(MatchError(domainerrors.ErrManagedPermission))

			_, params, _ := domainerrors.MessageID(err)
			Expect(params).To(HaveKeyWithValue("Manager", "Company Access"))
			Expect(permissionKeys("alice@example.com")).To(HaveLen(2))
		})

		It("permite remover depois de desativar o manager", func() {
			input := companyInput("alice@example.com")
			input.IsActive = false
			_, err := service.UpdateManager(ctx, manager.ID, input)
			Expect(err).NotTo(HaveOccurred())

			rows, err := userPerms.ListByManager(ctx, manager.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(guard.Delete(ctx, rows[0].ID)).To(Succeed())
			Expect(permissionKeys("alice@example.com")).To(HaveLen(1))
		})

		It("permite remover linhas manuais", func() {
			manual, err := guard.Create(ctx, services.UserPermissionInput{
				User:     "alice@example.com",
				Allow:    "Territory",
				ForValue: "South",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(guard.Delete(ctx, manual.ID)).To(Succeed())
		})

		It("retorna erro para linha inexistente", func() {
			Expect(guard.Delete(ctx, "missing")).To(MatchError(domainerrors.ErrUserPermissionNotFound))
		})
	})

	Describe("operações remotas", func() {
		var manager *entities.PermissionManager

		BeforeEach(func() {
			result, err := service.CreateManager(ctx, companyInput("alice@example.com"))
			Expect(err).NotTo(HaveOccurred())
			manager = result.Manager
		})

		It("conta e recria permissões ausentes", func() {
			rows, err := userPerms.ListByManager(ctx, manager.ID)
			Expect(err).NotTo(HaveOccurred())
			for _, r := range rows {
				Expect(userPerms.Delete(ctx, r.ID)).To(Succeed())
			}

			report, err := service.CheckMissing(ctx, manager.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Eligible).To(BeTrue())
			Expect(report.MissingCount).To(Equal(2))

			report, err = service.RecreateMissing(ctx, manager.ManagerName)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.MissingCount).To(Equal(2))
			Expect(permissionKeys("alice@example.com")).To(HaveLen(2))
			Expect(notifier.Notices()).To(HaveLen(1))
		})

		It("informa manager inativo como não elegível", func() {
			input := companyInput("alice@example.com")
			input.IsActive = false
			_, err := service.UpdateManager(ctx, manager.ID, input)
			Expect(err).NotTo(HaveOccurred())

			report, err := service.CheckMissing(ctx, manager.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Eligible).To(BeFalse())

			Expect(service.ApplyToUser(ctx, manager.ID, "bob@example.com")).To(MatchError(domainerrors.ErrManagerInactive))
		})

		It("aplica em lote e remove de um usuário", func() {
			results, err := service.BulkApply(ctx, manager.ID, []string{"bob@example.com", "dave@example.com"})
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(2))
			for _, r := range results {
				Expect(r.Err).NotTo(HaveOccurred())
			}
			Expect(permissionKeys("dave@example.com")).To(HaveLen(2))

			removed, err := service.RemoveFromUser(ctx, manager.ID, "bob@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(removed).To(Equal(int64(2)))
			Expect(permissionKeys("bob@example.com")).To(BeEmpty())
		})

		It("inclui usuários aplicados manualmente na ressincronização", func() {
			Expect(service.ApplyToUser(ctx, manager.ID, "bob@example.com")).To(Succeed())

			input := companyInput("alice@example.com")
			input.Details = input.Details[:1]
			_, err := service.UpdateManager(ctx, manager.ID, input)
			Expect(err).NotTo(HaveOccurred())

			Expect(permissionKeys("bob@example.com")).To(ConsistOf("Company=Acme"))
		})

		It("sincroniza todos os managers ativos", func() {
			results, err := service.SyncAll(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(1))
			Expect(results[0].Manager).To(Equal("Company Access"))
			Expect(results[0].Err).NotTo(HaveOccurred())
		})

		It("descreve o manager e os usuários alvo", func() {
			preview, err := service.Preview(ctx, manager.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(preview.TargetUsers).To(ConsistOf("alice@example.com"))
			Expect(preview.Manager.Details).To(HaveLen(2))
		})

		It("resume as permissões do usuário e os managers aplicados", func() {
			_, err := guard.Create(ctx, services.UserPermissionInput{
				User:     "alice@example.com",
				Allow:    "Territory",
				ForValue: "East",
			})
			Expect(err).NotTo(HaveOccurred())

			summary, err := service.UserPermissionsSummary(ctx, "alice@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Managed).To(HaveLen(2))
			Expect(summary.Manual).To(HaveLen(1))
			Expect(summary.TotalPermissions).To(Equal(3))
			Expect(summary.ManagerNames).To(HaveKeyWithValue(manager.ID, "Company Access"))

			refs, err := service.ManagersForUser(ctx, "alice@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(refs).To(HaveLen(1))
			Expect(refs[0].ManagerID).To(Equal(manager.ID))
		})

		It("calcula as estatísticas", func() {
			_, err := guard.Create(ctx, services.UserPermissionInput{
				User:     "bob@example.com",
				Allow:    "Company",
				ForValue: "Globex",
			})
			Expect(err).NotTo(HaveOccurred())

			stats, err := service.Statistics(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.TotalManagers).To(Equal(int64(1)))
			Expect(stats.ActiveManagers).To(Equal(int64(1)))
			Expect(stats.TotalPermissions).To(Equal(int64(3)))
			Expect(stats.ManagedPermissions).To(Equal(int64(2)))
			Expect(stats.ManualPermissions).To(Equal(int64(1)))
			Expect(stats.UsersWithPermissions).To(Equal(int64(2)))
			Expect(stats.CommonPermissions[0].Allow).To(Equal("Company"))
			Expect(stats.CommonPermissions[0].Count).To(Equal(int64(2)))
		})

		It("lista os managers ativos com a quantidade de detalhes", func() {
			overview, err := service.AvailableManagers(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(overview).To(HaveLen(1))
			Expect(overview[0].PermissionCount).To(Equal(2))
		})
	})
})
