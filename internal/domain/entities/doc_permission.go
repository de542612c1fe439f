package entities

import (
	"sort"
	"time"
)

// PermissionSource diferencia permissões padrão das customizadas
type PermissionSource string

const (
	PermissionSourceStandard PermissionSource = "standard"
	PermissionSourceCustom   PermissionSource = "custom"
)

// DocPermission é uma linha de permissão de um role sobre um tipo de entidade
type DocPermission struct {
	ID           string
	Role         string
	Parent       string // tipo de entidade alvo
	PermLevel    int
	Source       PermissionSource
	Capabilities Capabilities
	CreatedAt    time.Time
}

// DocType representa um tipo de entidade registrado no sistema
type DocType struct {
	Name     string
	IsSingle bool
	IsTable  bool
	Custom   bool
}

// MergedPermission é o resultado da combinação das linhas de um role para uma entidade
type MergedPermission struct {
	Parent       string
	Source       PermissionSource
	PermLevel    int
	Capabilities Capabilities
	// SourceRows é a quantidade de linhas originais combinadas
	SourceRows int
}

type mergeKey struct {
	source PermissionSource
	parent string
}

// MergePermissions agrupa as linhas por (origem, entidade) e combina as capacidades com OU lógico.
// O nível de permissão resultante é o menor do grupo. O resultado é ordenado por entidade.
func MergePermissions(rows []*DocPermission) []MergedPermission {
	index := make(map[mergeKey]int)
	merged := make([]MergedPermission, 0, len(rows))

	for _, row := range rows {
		source := row.Source
		if source == "" {
			source = PermissionSourceStandard
		}
		key := mergeKey{source: source, parent: row.Parent}

		i, ok := index[key]
		if !ok {
			index[key] = len(merged)
			merged = append(merged, MergedPermission{
				Parent:       row.Parent,
				Source:       source,
				PermLevel:    row.PermLevel,
				Capabilities: row.Capabilities,
				SourceRows:   1,
			})
			continue
		}

		m := &merged[i]
		m.Capabilities = m.Capabilities.Or(row.Capabilities)
		if row.PermLevel < m.PermLevel {
			m.PermLevel = row.PermLevel
		}
		m.SourceRows++
	}

	sort.SliceStable(merged, func(a, b int) bool {
		if merged[a].Parent != merged[b].Parent {
			return merged[a].Parent < merged[b].Parent
		}
		return merged[a].Source < merged[b].Source
	})

	return merged
}

// ToDocPermission converte o resultado combinado em uma nova linha para o role informado
func (m MergedPermission) ToDocPermission(role string) *DocPermission {
	return &DocPermission{
		Role:         role,
		Parent:       m.Parent,
		PermLevel:    m.PermLevel,
		Source:       m.Source,
		Capabilities: m.Capabilities,
	}
}
