package dto

import (
	"github.com/gin-gonic/gin"

	"github.com/rafabene/access-admin/internal/handlers/middleware"
)

// Translator é a parte do catálogo de mensagens usada pelas respostas
type Translator interface {
	T(lang, key string, params ...map[string]interface{}) string
	GetDefaultLanguage() string
}

func translator(c *gin.Context) (Translator, bool) {
	value, exists := c.Get(middleware.I18nServiceContextKey)
	if !exists {
		return nil, false
	}
	t, ok := value.(Translator)
	return t, ok
}

// T traduz key no idioma da requisição.
// Sem o middleware de i18n a própria chave é devolvida.
func T(c *gin.Context, key string, params ...map[string]interface{}) string {
	t, ok := translator(c)
	if !ok {
		return key
	}
	return t.T(Language(c), key, params...)
}

// Language retorna o idioma detectado para a requisição
func Language(c *gin.Context) string {
	if lang := c.GetString(middleware.LanguageContextKey); lang != "" {
		return lang
	}
	if t, ok := translator(c); ok {
		return t.GetDefaultLanguage()
	}
	return "en"
}
