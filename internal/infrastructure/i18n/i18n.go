package i18n

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"
	"text/template"
)

//go:embed locales/*.json
var embeddedLocales embed.FS

// message é uma entrada do catálogo; tmpl só existe quando há interpolação
type message struct {
	text string
	tmpl *template.Template
}

// Service resolve chaves de mensagem nos catálogos carregados.
// Os catálogos são imutáveis depois do carregamento.
type Service struct {
	catalogs        map[string]map[string]message
	languages       []string
	defaultLanguage string
}

// NewService carrega os catálogos *.json de localesDir
func NewService(localesDir, defaultLang string) (*Service, error) {
	if _, err := os.Stat(localesDir); err != nil {
		return nil, fmt.Errorf("failed to open locales dir %s: %w", localesDir, err)
	}
	return NewServiceFS(os.DirFS(localesDir), ".", defaultLang)
}

// NewEmbeddedService cria o serviço com os catálogos embutidos no binário
func NewEmbeddedService(defaultLang string) (*Service, error) {
	return NewServiceFS(embeddedLocales, "locales", defaultLang)
}

// NewServiceFS carrega os arquivos .json de dir dentro de fsys.
// O nome do arquivo é o idioma (pt-BR.json -> pt-BR).
func NewServiceFS(fsys fs.FS, dir, defaultLang string) (*Service, error) {
	files, err := fs.Glob(fsys, path.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to find locale files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no locale files found in %s", dir)
	}

	s := &Service{
		catalogs:        make(map[string]map[string]message, len(files)),
		defaultLanguage: defaultLang,
	}

	for _, file := range files {
		lang := strings.TrimSuffix(path.Base(file), ".json")

		catalog, err := loadCatalog(fsys, file)
		if err != nil {
			return nil, err
		}

		s.catalogs[lang] = catalog
		s.languages = append(s.languages, lang)
	}
	slices.Sort(s.languages)

	if _, ok := s.catalogs[defaultLang]; !ok {
		return nil, fmt.Errorf("default language %s not found in locale files", defaultLang)
	}

	return s, nil
}

func loadCatalog(fsys fs.FS, file string) (map[string]message, error) {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return nil, fmt.Errorf("failed to read locale file %s: %w", file, err)
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse locale file %s: %w", file, err)
	}

	catalog := make(map[string]message, len(entries))
	for key, text := range entries {
		msg := message{text: text}
		if strings.Contains(text, "{{") {
			msg.tmpl, err = template.New(key).Parse(text)
			if err != nil {
				return nil, fmt.Errorf("invalid template for %s in %s: %w", key, file, err)
			}
		}
		catalog[key] = msg
	}
	return catalog, nil
}

// T traduz uma chave para o idioma especificado.
// Parâmetros preenchem o template da mensagem ({{.Role}}, {{.Count}}).
// Chaves ausentes caem no idioma padrão e, por fim, na própria chave.
func (s *Service) T(lang, key string, params ...map[string]interface{}) string {
	msg, ok := s.catalogs[lang][key]
	if !ok {
		msg, ok = s.catalogs[s.defaultLanguage][key]
	}
	if !ok {
		return key
	}

	if msg.tmpl == nil || len(params) == 0 || params[0] == nil {
		return msg.text
	}

	var buf bytes.Buffer
	if err := msg.tmpl.Execute(&buf, params[0]); err != nil {
		return msg.text
	}
	return buf.String()
}

// GetDefaultLanguage retorna o idioma padrão configurado
func (s *Service) GetDefaultLanguage() string {
	return s.defaultLanguage
}

// GetSupportedLanguages retorna os idiomas carregados em ordem alfabética
func (s *Service) GetSupportedLanguages() []string {
	return slices.Clone(s.languages)
}

// IsLanguageSupported verifica se um idioma é suportado
func (s *Service) IsLanguageSupported(lang string) bool {
	_, ok := s.catalogs[lang]
	return ok
}

// MissingKeys lista as chaves do idioma padrão que faltam em lang
func (s *Service) MissingKeys(lang string) []string {
	catalog := s.catalogs[lang]

	var missing []string
	for key := range s.catalogs[s.defaultLanguage] {
		if _, ok := catalog[key]; !ok {
			missing = append(missing, key)
		}
	}
	slices.Sort(missing)
	return missing
}
