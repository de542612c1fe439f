package i18n

import (
	"sync"
	"testing"
	"testing/fstest"
)

// testLocales monta um catálogo em memória com os três idiomas
func testLocales() fstest.MapFS {
	return fstest.MapFS{
		"en.json": {Data: []byte(`{
  "role.duplicated": "Role '{{.Source}}' duplicated successfully as '{{.Role}}'",
  "manager.synced": "Synced successfully",
  "error.role_not_found": "Source role '{{.Role}}' does not exist"
}`)},
		"pt-BR.json": {Data: []byte(`{
  "role.duplicated": "Role '{{.Source}}' duplicado com sucesso como '{{.Role}}'",
  "manager.synced": "Sincronizado com sucesso"
}`)},
		"es.json": {Data: []byte(`{
  "role.duplicated": "Rol '{{.Source}}' duplicado correctamente como '{{.Role}}'",
  "manager.synced": "Sincronizado correctamente",
  "error.role_not_found": "El rol de origen '{{.Role}}' no existe"
}`)},
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()

	service, err := NewServiceFS(testLocales(), ".", "en")
	if err != nil {
		t.Fatalf("esperava sucesso, obteve erro: %v", err)
	}
	return service
}

func TestNewServiceFS(t *testing.T) {
	t.Run("carrega os idiomas em ordem", func(t *testing.T) {
		service := newTestService(t)

		langs := service.GetSupportedLanguages()
		expected := []string{"en", "es", "pt-BR"}
		if len(langs) != len(expected) {
			t.Fatalf("esperava %v, obteve %v", expected, langs)
		}
		for i := range expected {
			if langs[i] != expected[i] {
				t.Errorf("esperava %v, obteve %v", expected, langs)
			}
		}
	})

	t.Run("erro quando idioma padrão não existe", func(t *testing.T) {
		if _, err := NewServiceFS(testLocales(), ".", "fr"); err == nil {
			t.Error("esperava erro para idioma padrão inexistente")
		}
	})

	t.Run("erro para template inválido", func(t *testing.T) {
		locales := fstest.MapFS{"en.json": {Data: []byte(`{"broken": "Hello {{.Name"}`)}}
		if _, err := NewServiceFS(locales, ".", "en"); err == nil {
			t.Error("esperava erro para template inválido")
		}
	})

	t.Run("erro para JSON inválido", func(t *testing.T) {
		locales := fstest.MapFS{"en.json": {Data: []byte(`{"key": `)}}
		if _, err := NewServiceFS(locales, ".", "en"); err == nil {
			t.Error("esperava erro para JSON inválido")
		}
	})

	t.Run("erro quando diretório não existe", func(t *testing.T) {
		if _, err := NewService("/diretorio/inexistente", "en"); err == nil {
			t.Error("esperava erro, obteve sucesso")
		}
	})
}

func TestService_T(t *testing.T) {
	service := newTestService(t)
	params := map[string]interface{}{"Source": "Sales User", "Role": "Sales Copy"}

	tests := []struct {
		name     string
		lang     string
		key      string
		params   map[string]interface{}
		expected string
	}{
		{"mensagem simples", "en", "manager.synced", nil, "Synced successfully"},
		{"mensagem simples em português", "pt-BR", "manager.synced", nil, "Sincronizado com sucesso"},
		{"interpola parâmetros", "en", "role.duplicated", params, "Role 'Sales User' duplicated successfully as 'Sales Copy'"},
		{"interpola parâmetros em espanhol", "es", "role.duplicated", params, "Rol 'Sales User' duplicado correctamente como 'Sales Copy'"},
		{"cai no idioma padrão", "pt-BR", "error.role_not_found", map[string]interface{}{"Role": "Ghost"}, "Source role 'Ghost' does not exist"},
		{"idioma desconhecido usa o padrão", "fr", "manager.synced", nil, "Synced successfully"},
		{"chave desconhecida retorna a chave", "en", "unknown.key", nil, "unknown.key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result string
			if tt.params != nil {
				result = service.T(tt.lang, tt.key, tt.params)
			} else {
				result = service.T(tt.lang, tt.key)
			}
			if result != tt.expected {
				t.Errorf("esperava '%s', obteve '%s'", tt.expected, result)
			}
		})
	}
}

func TestService_IsLanguageSupported(t *testing.T) {
	service := newTestService(t)

	for lang, expected := range map[string]bool{"en": true, "pt-BR": true, "es": true, "fr": false, "": false} {
		if got := service.IsLanguageSupported(lang); got != expected {
			t.Errorf("idioma '%s': esperava %v, obteve %v", lang, expected, got)
		}
	}
}

func TestService_MissingKeys(t *testing.T) {
	service := newTestService(t)

	missing := service.MissingKeys("pt-BR")
	if len(missing) != 1 || missing[0] != "error.role_not_found" {
		t.Errorf("esperava [error.role_not_found], obteve %v", missing)
	}
	if missing := service.MissingKeys("es"); len(missing) != 0 {
		t.Errorf("esperava nenhuma chave ausente, obteve %v", missing)
	}
}

func TestService_ConcurrentT(t *testing.T) {
	service := newTestService(t)
	params := map[string]interface{}{"Source": "A", "Role": "B"}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, lang := range []string{"en", "pt-BR", "es"} {
				if service.T(lang, "role.duplicated", params) == "role.duplicated" {
					t.Errorf("tradução ausente para %s", lang)
				}
			}
		}()
	}
	wg.Wait()
}

func TestNewEmbeddedService(t *testing.T) {
	service, err := NewEmbeddedService("en")
	if err != nil {
		t.Fatalf("esperava sucesso, obteve erro: %v", err)
	}

	t.Run("interpola mensagens de domínio", func(t *testing.T) {
		result := service.T("en", "error.role_already_exists", map[string]interface{}{"Role": "Sales Copy"})
		expected := "Role 'Sales Copy' already exists"
		if result != expected {
			t.Errorf("esperava '%s', obteve '%s'", expected, result)
		}
	})

	t.Run("traduz aviso de permissões recriadas em português", func(t *testing.T) {
		result := service.T("pt-BR", "notice.missing_permissions_recreated", map[string]interface{}{"Count": 2})
		expected := "2 permissões ausentes detectadas e recriadas"
		if result != expected {
			t.Errorf("esperava '%s', obteve '%s'", expected, result)
		}
	})

	t.Run("todos os idiomas possuem as mesmas chaves", func(t *testing.T) {
		for _, lang := range service.GetSupportedLanguages() {
			if missing := service.MissingKeys(lang); len(missing) > 0 {
				t.Errorf("idioma '%s' sem as chaves %v", lang, missing)
			}
		}
	})
}
