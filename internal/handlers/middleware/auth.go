package middleware

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/moogar0880/problems"

	"github.com/rafabene/access-admin/internal/domain/errors"
	"github.com/rafabene/access-admin/internal/domain/ports"
	"github.com/rafabene/access-admin/internal/infrastructure/i18n"
)

const (
	// ClaimsContextKey guarda as claims autenticadas no contexto do Gin
	ClaimsContextKey = "claims"

	// PermissionAll concede qualquer permissão
	PermissionAll = "*"
)

// Permissões verificadas pelas rotas
const (
	PermissionRoleRead     = "role:read"
	PermissionRoleWrite    = "role:write"
	PermissionManagerRead  = "permission_manager:read"
	PermissionManagerWrite = "permission_manager:write"
)

// Claims são as claims do bearer token
type Claims struct {
	jwt.RegisteredClaims
	Email       string   `json:"email"`
	Permissions []string `json:"permissions"`
}

// HasPermission verifica uma permissão exata, o curinga do recurso ("role:*") ou "*"
func (c *Claims) HasPermission(permission string) bool {
	if slices.Contains(c.Permissions, PermissionAll) || slices.Contains(c.Permissions, permission) {
		return true
	}
	if idx := strings.Index(permission, ":"); idx != -1 {
		return slices.Contains(c.Permissions, permission[:idx]+":*")
	}
	return false
}

// AuthMiddleware valida bearer tokens HMAC
type AuthMiddleware struct {
	secret []byte
	logger ports.Logger
}

// NewAuthMiddleware cria o middleware; segredo vazio só é aceito em desenvolvimento
func NewAuthMiddleware(secret string, logger ports.Logger) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(secret), logger: logger}
}

// Authenticate exige um bearer token válido.
// Sem segredo configurado, todas as requisições recebem acesso total.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(m.secret) == 0 {
			c.Set(ClaimsContextKey, &Claims{Email: "developer@localhost", Permissions: []string{PermissionAll}})
			c.Next()
			return
		}

		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			// navegadores não enviam cabeçalhos no handshake do websocket
			tokenString = c.Query("access_token")
		}
		if tokenString == "" {
			abortWithProblem(c, http.StatusUnauthorized, errors.ProblemTypeUnauthorized, "error.unauthorized")
			return
		}

		claims, err := m.verify(tokenString)
		if err != nil {
			m.logger.Debug("rejected bearer token", "error", err, "path", c.Request.URL.Path)
			abortWithProblem(c, http.StatusUnauthorized, errors.ProblemTypeUnauthorized, "error.unauthorized")
			return
		}

		c.Set(ClaimsContextKey, claims)
		c.Next()
	}
}

func (m *AuthMiddleware) verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secret, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// RequirePermission recusa com 403 quem não possui a permissão
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			abortWithProblem(c, http.StatusUnauthorized, errors.ProblemTypeUnauthorized, "error.unauthorized")
			return
		}
		if !claims.HasPermission(permission) {
			abortWithProblem(c, http.StatusForbidden, errors.ProblemTypeForbidden, "error.forbidden")
			return
		}
		c.Next()
	}
}

// GetClaims retorna as claims autenticadas da requisição
func GetClaims(c *gin.Context) (*Claims, bool) {
	value, exists := c.Get(ClaimsContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*Claims)
	return claims, ok
}

// abortWithProblem responde com um documento RFC 7807 traduzido.
// keyPrefix resolve "<prefix>.title" e "<prefix>.detail".
func abortWithProblem(c *gin.Context, status int, problemType, keyPrefix string) {
	title, detail := keyPrefix+".title", keyPrefix+".detail"
	if service, ok := c.Get(I18nServiceContextKey); ok {
		if svc, ok := service.(*i18n.Service); ok {
			lang := c.GetString(LanguageContextKey)
			title, detail = svc.T(lang, title), svc.T(lang, detail)
		}
	}

	baseURL := c.GetString("base_url")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	problem := problems.NewDetailedProblem(status, detail)
	problem.Type = baseURL + problemType
	problem.Title = title
	problem.Instance = c.Request.URL.Path

	c.Header("Content-Type", problems.ProblemMediaType)
	c.AbortWithStatusJSON(status, problem)
}
