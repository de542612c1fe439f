package http_test

import (
	"context"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/access-admin/internal/domain/entities"
	"github.com/rafabene/access-admin/internal/infrastructure/persistence/relational"
)

var _ = Describe("Router", func() {
	var app *testApp

	BeforeEach(func() {
		app = newTestApp("")
	})

	Describe("roles", func() {
		BeforeEach(func() {
			ctx := context.Background()
			Expect(relational.NewRoleRepository(app.db).Create(ctx, &entities.Role{Name: "Sales User", DeskAccess: true})).To(Succeed())
			Expect(relational.NewDocTypeRepository(app.db).Create(ctx, &entities.DocType{Name: "Employee"})).To(Succeed())

			perms := relational.NewDocPermissionRepository(app.db)
			for _, caps := range []entities.Capabilities{{Read: true}, {Write: true}} {
				Expect(perms.Create(ctx, &entities.DocPermission{
					Role:         "Sales User",
					Parent:       "Employee",
					Source:       entities.PermissionSourceStandard,
					Capabilities: caps,
				})).To(Succeed())
			}
		})

		It("duplica um role combinando as permissões", func() {
			w := app.do(http.MethodPost, "/api/v1/roles/duplicate", map[string]any{
				"source_role":   "Sales User",
				"new_role_name": "Sales Copy",
			})
			Expect(w.Code).To(Equal(http.StatusCreated), w.Body.String())

			body := decode(w)
			Expect(body["success"]).To(BeTrue())
			Expect(body["new_role"]).To(Equal("Sales Copy"))
			Expect(body["permissions_created"]).To(BeEquivalentTo(1))
			Expect(body["failed_permissions"]).To(BeEmpty())
			Expect(body["message"]).To(Equal("Role 'Sales User' duplicated successfully as 'Sales Copy'"))

			w = app.do(http.MethodGet, "/api/v1/roles/Sales%20Copy", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decode(w)["total_permissions"]).To(BeEquivalentTo(1))
		})

		It("responde 409 em formato de problema para nome existente", func() {
			w := app.do(http.MethodPost, "/api/v1/roles/duplicate", map[string]any{
				"source_role":   "Sales User",
				"new_role_name": "Sales User Copy",
			})
			Expect(w.Code).To(Equal(http.StatusCreated))

			w = app.do(http.MethodPost, "/api/v1/roles/duplicate", map[string]any{
				"source_role":   "Sales User",
				"new_role_name": "Sales User Copy",
			})
			Expect(w.Code).To(Equal(http.StatusConflict))
			Expect(w.Header().Get("Content-Type")).To(HavePrefix("application/problem+json"))

			body := decode(w)
			Expect(body["type"]).To(Equal("http://api.test/problems/conflict"))
			Expect(body["detail"]).To(Equal("Role 'Sales User Copy' already exists"))
			Expect(body["instance"]).To(Equal("/api/v1/roles/duplicate"))
		})

		It("responde 422 para origem igual ao destino e 404 para origem inexistente", func() {
			w := app.do(http.MethodPost, "/api/v1/roles/duplicate", map[string]any{
				"source_role":   "Sales User",
				"new_role_name": "Sales User",
			})
			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))

			w = app.do(http.MethodPost, "/api/v1/roles/duplicate", map[string]any{
				"source_role":   "Ghost",
				"new_role_name": "Ghost Copy",
			})
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("traduz o problema conforme o idioma da requisição", func() {
			w := app.do(http.MethodPost, "/api/v1/roles/duplicate?lang=pt-BR", map[string]any{
				"source_role": "Sales User",
			})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w)["title"]).NotTo(Equal("Validation Error"))
		})

		It("processa o lote item a item", func() {
			w := app.do(http.MethodPost, "/api/v1/roles/bulk-duplicate", map[string]any{
				"roles": []map[string]any{
					{"source_role": "Sales User", "new_role_name": "Bulk One"},
					{"source_role": "Missing", "new_role_name": "Bulk Two"},
				},
			})
			Expect(w.Code).To(Equal(http.StatusOK))

			results := decode(w)["results"].([]any)
			Expect(results).To(HaveLen(2))
			Expect(results[0].(map[string]any)["success"]).To(BeTrue())
			Expect(results[1].(map[string]any)["success"]).To(BeFalse())
			Expect(results[1].(map[string]any)["message"]).To(Equal("Source role 'Missing' does not exist"))
		})

		It("entrega o contexto do painel de roles", func() {
			w := app.do(http.MethodGet, "/api/v1/dashboard/roles", nil)
			Expect(w.Code).To(Equal(http.StatusOK))

			body := decode(w)
			Expect(body["title"]).To(Equal("Easy Duplicate Role"))
			Expect(body["roles"]).To(HaveLen(1))
		})
	})

	Describe("permission managers", func() {
		managerBody := func(user string) map[string]any {
			return map[string]any{
				"manager_name": "Sales Access",
				"user_field":   user,
				"user_permission_details": []map[string]any{
					{"allow": "Company", "for_value": "Acme"},
					{"allow": "Cost Center", "for_value": "Main - A"},
				},
			}
		}

		BeforeEach(func() {
			app.createUser("ana@example.com")
			app.createUser("bruno@example.com")
		})

		It("cria, aplica e protege as linhas do manager", func() {
			w := app.do(http.MethodPost, "/api/v1/permission-managers", managerBody("ana@example.com"))
			Expect(w.Code).To(Equal(http.StatusCreated), w.Body.String())

			body := decode(w)
			Expect(body["synced"]).To(BeTrue())
			manager := body["manager"].(map[string]any)
			Expect(manager["is_active"]).To(BeTrue())
			id := manager["name"].(string)

			w = app.do(http.MethodGet, "/api/v1/users/ana@example.com/permissions", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			summary := decode(w)
			Expect(summary["managed_permissions"]).To(HaveLen(2))
			Expect(summary["manual_permissions"]).To(BeEmpty())

			row := summary["managed_permissions"].([]any)[0].(map[string]any)
			Expect(row["manager_name"]).To(Equal("Sales Access"))

			w = app.do(http.MethodDelete, "/api/v1/user-permissions/"+row["name"].(string), nil)
			Expect(w.Code).To(Equal(http.StatusForbidden))
			Expect(decode(w)["detail"]).To(ContainSubstring("managed by 'Sales Access'"))

			w = app.do(http.MethodPost, "/api/v1/permission-managers/"+id+"/apply", map[string]any{"user": "bruno@example.com"})
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decode(w)["message"]).To(Equal("Permissions applied successfully to user bruno@example.com"))

			w = app.do(http.MethodGet, "/api/v1/users/bruno@example.com/permission-managers", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decode(w)["managers"]).To(HaveLen(1))

			w = app.do(http.MethodDelete, "/api/v1/permission-managers/"+id, nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decode(w)["deleted_count"]).To(BeEquivalentTo(4))
		})

		It("aceita o nome do manager como referência", func() {
			w := app.do(http.MethodPost, "/api/v1/permission-managers", managerBody("ana@example.com"))
			Expect(w.Code).To(Equal(http.StatusCreated))

			w = app.do(http.MethodGet, "/api/v1/permission-managers/Sales%20Access/missing", nil)
			Expect(w.Code).To(Equal(http.StatusOK))

			body := decode(w)
			Expect(body["missing_count"]).To(BeEquivalentTo(0))
			Expect(body["message"]).To(Equal("No missing permissions"))
		})

		It("recusa detalhes sem valor com a lista de campos", func() {
			w := app.do(http.MethodPost, "/api/v1/permission-managers", map[string]any{
				"manager_name":            "Broken",
				"user_permission_details": []map[string]any{{"allow": "Company"}},
			})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w)["errors"]).NotTo(BeEmpty())
		})

		It("recusa manager sem detalhes com 422", func() {
			w := app.do(http.MethodPost, "/api/v1/permission-managers", map[string]any{"manager_name": "Empty"})
			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
		})

		It("sincroniza todos os managers e expõe as estatísticas", func() {
			Expect(app.do(http.MethodPost, "/api/v1/permission-managers", managerBody("ana@example.com")).Code).To(Equal(http.StatusCreated))

			w := app.do(http.MethodPost, "/api/v1/permission-managers/sync-all", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			body := decode(w)
			Expect(body["total_managers"]).To(BeEquivalentTo(1))
			Expect(body["success_count"]).To(BeEquivalentTo(1))

			w = app.do(http.MethodGet, "/api/v1/permission-managers/statistics", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			stats := decode(w)
			Expect(stats["active_managers"]).To(BeEquivalentTo(1))
			Expect(stats["managed_permissions"]).To(BeEquivalentTo(2))

			w = app.do(http.MethodGet, "/api/v1/dashboard/permission-managers", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			dashboard := decode(w)
			Expect(dashboard["managers"]).To(HaveLen(1))
			Expect(dashboard["users"]).To(HaveLen(2))
		})

		It("remove permissões manuais sem restrição", func() {
			w := app.do(http.MethodPost, "/api/v1/user-permissions", map[string]any{
				"user":      "ana@example.com",
				"allow":     "Company",
				"for_value": "Other Co",
			})
			Expect(w.Code).To(Equal(http.StatusCreated))

			w = app.do(http.MethodDelete, "/api/v1/user-permissions/"+decode(w)["name"].(string), nil)
			Expect(w.Code).To(Equal(http.StatusOK))
		})
	})

	Describe("usuários", func() {
		It("desabilita um usuário referenciado pelo email", func() {
			app.createUser("carla@example.com")

			w := app.do(http.MethodPatch, "/api/v1/users/carla@example.com", map[string]any{"enabled": false})
			Expect(w.Code).To(Equal(http.StatusOK), w.Body.String())
			Expect(decode(w)["enabled"]).To(BeFalse())

			w = app.do(http.MethodGet, "/api/v1/users?enabled_only=true", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(Equal("[]"))
		})

		It("exige o campo enabled", func() {
			app.createUser("davi@example.com")

			w := app.do(http.MethodPatch, "/api/v1/users/davi@example.com", map[string]any{})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("retorna 404 para usuário desconhecido", func() {
			w := app.do(http.MethodGet, "/api/v1/users/ghost@example.com", nil)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("autenticação", func() {
		BeforeEach(func() {
			app = newTestApp("router-secret")
		})

		It("exige bearer token nas rotas da API", func() {
			w := app.do(http.MethodGet, "/api/v1/roles", nil)
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("mantém o health check público", func() {
			w := app.do(http.MethodGet, "/health", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
		})
	})
})
