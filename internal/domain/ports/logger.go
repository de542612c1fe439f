package ports

// Logger é o log estruturado usado pelos serviços.
// args segue a convenção chave/valor do slog ("role", name).
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// With devolve um logger que inclui args em toda mensagem
	With(args ...any) Logger
}
