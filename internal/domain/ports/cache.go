package ports

import "context"

// SummaryCache armazena resumos caros de calcular (contagens, estatísticas)
type SummaryCache interface {
	// Get preenche dest e retorna true quando a chave existe
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, keys ...string) error
}

// Chaves dos resumos armazenados em cache
const (
	CacheKeyRolesSummary         = "access-admin:roles:summary"
	CacheKeyPermissionStatistics = "access-admin:permissions:statistics"
)
