package ports

import "context"

// NoticeLevel indica a severidade de um aviso exibido ao usuário
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
)

// Notice é um aviso visível ao usuário (ex: permissões recriadas)
type Notice struct {
	Level   NoticeLevel            `json:"level"`
	Key     string                 `json:"key"`
	Params  map[string]interface{} `json:"params,omitempty"`
	Subject string                 `json:"subject,omitempty"`
}

// Notifier entrega avisos aos usuários conectados
type Notifier interface {
	Notify(ctx context.Context, notice Notice)
}
