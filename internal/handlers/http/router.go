package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/rafabene/access-admin/internal/domain/ports"
	"github.com/rafabene/access-admin/internal/handlers/middleware"
	"github.com/rafabene/access-admin/internal/infrastructure/i18n"
)

// RouterConfig reúne as dependências do roteador
type RouterConfig struct {
	Env            string
	BaseURL        string
	AllowedOrigins string
	I18n           *i18n.Service
	Auth           *middleware.AuthMiddleware
	Notices        gin.HandlerFunc
	Logger         ports.Logger

	Roles           *RoleHandler
	Managers        *PermissionManagerHandler
	UserPermissions *UserPermissionHandler
	Users           *UserHandler
	Dashboard       *DashboardHandler
}

// NewRouter monta as rotas da API
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Env != "test" {
		router.Use(gin.Logger())
	}
	router.Use(middleware.ErrorLogger(cfg.Logger))

	// Middleware global para adicionar base URL ao contexto
	router.Use(func(c *gin.Context) {
		c.Set("base_url", cfg.BaseURL)
		c.Next()
	})

	router.Use(middleware.NewI18nMiddleware(cfg.I18n).DetectLanguage())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"env":    cfg.Env,
		})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1", cfg.Auth.Authenticate())
	{
		if cfg.Notices != nil {
			v1.GET("/notices/ws", cfg.Notices)
		}

		roleRead := middleware.RequirePermission(middleware.PermissionRoleRead)
		roleWrite := middleware.RequirePermission(middleware.PermissionRoleWrite)
		managerRead := middleware.RequirePermission(middleware.PermissionManagerRead)
		managerWrite := middleware.RequirePermission(middleware.PermissionManagerWrite)

		roles := v1.Group("/roles")
		{
			roles.GET("", roleRead, cfg.Roles.GetAllRolesSummary)
			roles.POST("/duplicate", roleWrite, cfg.Roles.DuplicateRole)
			roles.POST("/bulk-duplicate", roleWrite, cfg.Roles.BulkDuplicateRoles)
			roles.GET("/:name", roleRead, cfg.Roles.GetRoleDetails)
			roles.GET("/:name/preview", roleRead, cfg.Roles.PreviewRolePermissions)
		}

		managers := v1.Group("/permission-managers")
		{
			managers.GET("", managerRead, cfg.Managers.AvailableManagers)
			managers.POST("", managerWrite, cfg.Managers.CreateManager)
			managers.GET("/statistics", managerRead, cfg.Managers.Statistics)
			managers.POST("/sync-all", managerWrite, cfg.Managers.SyncAll)
			managers.GET("/:id", managerRead, cfg.Managers.GetManager)
			managers.PUT("/:id", managerWrite, cfg.Managers.UpdateManager)
			managers.DELETE("/:id", managerWrite, cfg.Managers.DeleteManager)
			managers.GET("/:id/preview", managerRead, cfg.Managers.Preview)
			managers.POST("/:id/apply", managerWrite, cfg.Managers.ApplyToUser)
			managers.POST("/:id/bulk-apply", managerWrite, cfg.Managers.BulkApply)
			managers.POST("/:id/remove-user", managerWrite, cfg.Managers.RemoveFromUser)
			managers.GET("/:id/missing", managerRead, cfg.Managers.CheckMissing)
			managers.POST("/:id/recreate-missing", managerWrite, cfg.Managers.RecreateMissing)
		}

		users := v1.Group("/users")
		{
			users.POST("", managerWrite, cfg.Users.CreateUser)
			users.GET("", managerRead, cfg.Users.ListUsers)
			users.GET("/:user", managerRead, cfg.Users.GetUser)
			users.PATCH("/:user", managerWrite, cfg.Users.UpdateUser)
			users.GET("/:user/permissions", managerRead, cfg.Managers.UserPermissionsSummary)
			users.GET("/:user/permission-managers", managerRead, cfg.Managers.ManagersForUser)
		}

		userPermissions := v1.Group("/user-permissions")
		{
			userPermissions.POST("", managerWrite, cfg.UserPermissions.CreateUserPermission)
			userPermissions.DELETE("/:id", managerWrite, cfg.UserPermissions.DeleteUserPermission)
		}

		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("/roles", roleRead, cfg.Dashboard.Roles)
			dashboard.GET("/permission-managers", managerRead, cfg.Dashboard.Managers)
		}
	}

	return router
}
