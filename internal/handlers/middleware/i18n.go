package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/access-admin/internal/infrastructure/i18n"
)

const (
	// LanguageContextKey é a chave usada para armazenar o idioma no contexto do Gin
	LanguageContextKey = "language"
	// I18nServiceContextKey é a chave usada para armazenar o serviço i18n no contexto
	I18nServiceContextKey = "i18n_service"
)

// I18nMiddleware gerencia a detecção de idioma nas requisições
type I18nMiddleware struct {
	i18nService *i18n.Service
	supported   []string
}

// NewI18nMiddleware cria um novo middleware de i18n
func NewI18nMiddleware(i18nService *i18n.Service) *I18nMiddleware {
	return &I18nMiddleware{
		i18nService: i18nService,
		supported:   i18nService.GetSupportedLanguages(),
	}
}

// DetectLanguage detecta e configura o idioma da requisição
// Prioridade:
// 1. Query parameter ?lang=pt-BR (override explícito, também usado pelo websocket)
// 2. Accept-Language header
// 3. Idioma padrão
func (m *I18nMiddleware) DetectLanguage() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := m.resolve(c.Query("lang"))

		if lang == "" {
			lang = m.parseAcceptLanguage(c.GetHeader("Accept-Language"))
		}

		if lang == "" {
			lang = m.i18nService.GetDefaultLanguage()
		}

		c.Set(LanguageContextKey, lang)
		c.Set(I18nServiceContextKey, m.i18nService)

		c.Next()
	}
}

// parseAcceptLanguage retorna o primeiro idioma do header que pode ser resolvido.
// Exemplo: "fr,pt;q=0.9,en;q=0.8" -> "pt-BR"
func (m *I18nMiddleware) parseAcceptLanguage(acceptLang string) string {
	for _, lang := range strings.Split(acceptLang, ",") {
		if idx := strings.Index(lang, ";"); idx != -1 {
			lang = lang[:idx]
		}
		if resolved := m.resolve(lang); resolved != "" {
			return resolved
		}
	}
	return ""
}

// resolve casa uma tag com os idiomas carregados: exata, sem região (es-MX -> es)
// ou com a primeira região disponível (pt -> pt-BR)
func (m *I18nMiddleware) resolve(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" || tag == "*" {
		return ""
	}

	for _, lang := range m.supported {
		if strings.EqualFold(lang, tag) {
			return lang
		}
	}

	base, _, _ := strings.Cut(tag, "-")
	for _, lang := range m.supported {
		if strings.EqualFold(lang, base) {
			return lang
		}
	}
	for _, lang := range m.supported {
		if langBase, _, found := strings.Cut(lang, "-"); found && strings.EqualFold(langBase, base) {
			return lang
		}
	}

	return ""
}
