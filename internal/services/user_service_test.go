package services_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/access-admin/internal/domain/entities"
	domainerrors "github.com/rafabene/access-admin/internal/domain/errors"
	"github.com/rafabene/access-admin/internal/domain/repositories"
	"github.com/rafabene/access-admin/internal/infrastructure/persistence/relational"
	"github.com/rafabene/access-admin/internal/services"
)

var _ = Describe("UserService", func() {
	var (
		ctx     context.Context
		users   repositories.UserRepository
		service *services.UserService
	)

	BeforeEach(func() {
		ctx = context.Background()
		db := newTestDB()
		users = relational.NewUserRepository(db)
		service = services.NewUserService(users, relational.NewUnitOfWork(db), newTestLogger())
	})

	It("cria usuário de sistema habilitado por padrão", func() {
		user, err := service.CreateUser(ctx, services.CreateUserInput{
			Email:    "Alice@Example.com",
			FullName: "Alice",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(user.ID).NotTo(BeEmpty())
		Expect(user.Email.String()).To(Equal("alice@example.com"))
		Expect(user.Enabled).To(BeTrue())
		Expect(user.IsSystemUser()).To(BeTrue())

		found, err := service.GetUser(ctx, user.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(found.FullName).To(Equal("Alice"))

		byEmail, err := service.GetUser(ctx, "ALICE@example.com")
		Expect(err).NotTo(HaveOccurred())
		Expect(byEmail.ID).To(Equal(user.ID))
	})

	It("desabilitar tira o usuário do alcance dos managers globais", func() {
		_, err := service.CreateUser(ctx, services.CreateUserInput{Email: "carla@example.com", FullName: "Carla"})
		Expect(err).NotTo(HaveOccurred())
		_, err = service.CreateUser(ctx, services.CreateUserInput{Email: "davi@example.com", FullName: "Davi"})
		Expect(err).NotTo(HaveOccurred())
		_, err = service.CreateUser(ctx, services.CreateUserInput{
			Email:    "site@example.com",
			FullName: "Site",
			UserType: entities.UserTypeWebsite,
		})
		Expect(err).NotTo(HaveOccurred())

		emails, err := users.ListGlobalScopeEmails(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(emails).To(Equal([]string{"carla@example.com", "davi@example.com"}))

		user, err := service.SetUserEnabled(ctx, "carla@example.com", false)
		Expect(err).NotTo(HaveOccurred())
		Expect(user.Enabled).To(BeFalse())
		Expect(user.InGlobalScope()).To(BeFalse())

		emails, err = users.ListGlobalScopeEmails(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(emails).To(Equal([]string{"davi@example.com"}))

		_, err = service.SetUserEnabled(ctx, "nobody@example.com", true)
		Expect(err).To(MatchError(domainerrors.ErrUserNotFound))
	})

	It("pagina a listagem", func() {
		for _, email := range []string{"a1@example.com", "a2@example.com", "a3@example.com"} {
			_, err := service.CreateUser(ctx, services.CreateUserInput{Email: email, FullName: email})
			Expect(err).NotTo(HaveOccurred())
		}

		page, err := service.ListUsers(ctx, repositories.UserFilters{Page: 2, PageSize: 2})
		Expect(err).NotTo(HaveOccurred())
		Expect(page).To(HaveLen(1))
		Expect(page[0].Email.String()).To(Equal("a3@example.com"))
	})

	It("recusa email repetido", func() {
		input := services.CreateUserInput{Email: "bob@example.com", FullName: "Bob"}
		_, err := service.CreateUser(ctx, input)
		Expect(err).NotTo(HaveOccurred())

		_, err = service.CreateUser(ctx, input)
		Expect(err).To(MatchError(domainerrors.ErrUserAlreadyExists))
	})

	It("recusa dados inválidos", func() {
		_, err := service.CreateUser(ctx, services.CreateUserInput{Email: "not-an-email", FullName: "X"})
		Expect(err).To(MatchError(domainerrors.ErrInvalidInput))
	})

	It("filtra por tipo de usuário", func() {
		_, err := service.CreateUser(ctx, services.CreateUserInput{Email: "a@example.com", FullName: "A"})
		Expect(err).NotTo(HaveOccurred())
		_, err = service.CreateUser(ctx, services.CreateUserInput{
			Email:    "w@example.com",
			FullName: "W",
			UserType: entities.UserTypeWebsite,
		})
		Expect(err).NotTo(HaveOccurred())

		website := entities.UserTypeWebsite
		users, err := service.ListUsers(ctx, repositories.UserFilters{UserType: &website})
		Expect(err).NotTo(HaveOccurred())
		Expect(users).To(HaveLen(1))
		Expect(users[0].Email.String()).To(Equal("w@example.com"))
	})

	It("retorna erro para usuário inexistente", func() {
		_, err := service.GetUser(ctx, "missing")
		Expect(err).To(MatchError(domainerrors.ErrUserNotFound))
	})
})
