package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/rafabene/access-admin/internal/domain/ports"
)

// Config define os tempos da conexão WebSocket
type Config struct {
	PingInterval   time.Duration
	WriteWait      time.Duration
	ReadWait       time.Duration
	MaxMessageSize int64
	BufferSize     int
}

// DefaultConfig retorna a configuração padrão do hub
func DefaultConfig() Config {
	return Config{
		PingInterval:   30 * time.Second,
		WriteWait:      10 * time.Second,
		ReadWait:       60 * time.Second,
		MaxMessageSize: 1024,
		BufferSize:     16,
	}
}

// Message é o envelope enviado aos clientes
type Message struct {
	Type    string       `json:"type"`
	Message string       `json:"message"`
	Notice  ports.Notice `json:"notice"`
}

// Translator traduz a chave do aviso para o idioma do cliente
type Translator interface {
	T(lang, key string, params ...map[string]interface{}) string
}

type client struct {
	conn *websocket.Conn
	lang string
	send chan []byte
}

// Hub mantém os clientes conectados e distribui avisos para eles.
// Implementa ports.Notifier.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*client]struct{}
	config     Config
	translator Translator
	logger     ports.Logger
	upgrader   websocket.Upgrader
}

// NewHub cria um hub de avisos
func NewHub(config Config, translator Translator, logger ports.Logger) *Hub {
	if config.BufferSize <= 0 {
		config.BufferSize = DefaultConfig().BufferSize
	}
	return &Hub{
		clients:    make(map[*client]struct{}),
		config:     config,
		translator: translator,
		logger:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Notify envia o aviso a todos os clientes conectados.
// Clientes lentos cujo buffer está cheio são desconectados.
func (h *Hub) Notify(_ context.Context, notice ports.Notice) {
	var slow []*client
	encoded := make(map[string][]byte)

	// envio sob RLock: remove() precisa do Lock antes de fechar o canal
	h.mu.RLock()
	for c := range h.clients {
		data, ok := encoded[c.lang]
		if !ok {
			var err error
			if data, err = h.encode(c.lang, notice); err != nil {
				h.logger.Error("Failed to encode notice", "key", notice.Key, "language", c.lang, "error", err)
				continue
			}
			encoded[c.lang] = data
		}

		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn("Dropping slow websocket client")
		h.remove(c)
	}
}

func (h *Hub) encode(lang string, notice ports.Notice) ([]byte, error) {
	text := notice.Key
	if h.translator != nil {
		text = h.translator.T(lang, notice.Key, notice.Params)
	}
	return json.Marshal(Message{Type: "notice", Message: text, Notice: notice})
}

// ClientCount retorna o número de clientes conectados
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Handle faz o upgrade da requisição e registra o cliente.
// O idioma vem do middleware de i18n (chave "language").
func (h *Hub) Handle(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("Websocket upgrade failed", "error", err)
		return
	}

	cl := &client{
		conn: conn,
		lang: c.GetString("language"),
		send: make(chan []byte, h.config.BufferSize),
	}

	h.mu.Lock()
	h.clients[cl] = struct{}{}
	h.mu.Unlock()

	h.logger.Debug("Websocket client connected", "clients", h.ClientCount())

	go h.writePump(cl)
	go h.readPump(cl)
}

func (h *Hub) remove(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[cl]; ok {
		delete(h.clients, cl)
		close(cl.send)
	}
}

// readPump só detecta o fechamento da conexão; clientes não enviam comandos
func (h *Hub) readPump(cl *client) {
	defer func() {
		h.remove(cl)
		_ = cl.conn.Close()
	}()

	cl.conn.SetReadLimit(h.config.MaxMessageSize)
	_ = cl.conn.SetReadDeadline(time.Now().Add(h.config.ReadWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(h.config.ReadWait))
	})

	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("Websocket read error", "error", err)
			}
			return
		}
	}
}

func (h *Hub) writePump(cl *client) {
	ticker := time.NewTicker(h.config.PingInterval)
	defer func() {
		ticker.Stop()
		_ = cl.conn.Close()
	}()

	for {
		select {
		case data, ok := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(h.config.WriteWait))
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.logger.Warn("Websocket write failed", "error", err)
				h.remove(cl)
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(h.config.WriteWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.remove(cl)
				return
			}
		}
	}
}
