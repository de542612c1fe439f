package ports

import "context"

// UnitOfWork define a interface para gerenciamento de transações
type UnitOfWork interface {
	// WithTransaction executa fn dentro de uma transação. Qualquer erro ou panic
	// desfaz a transação. Chamadas aninhadas usam savepoints.
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}
