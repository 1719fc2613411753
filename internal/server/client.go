package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"deepstore-server/internal/engine"
	"deepstore-server/pkg/api"
	"deepstore-server/pkg/logger"
	"deepstore-server/pkg/utils"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и движком. Одна консоль управляет
// одним агентом.
type Client struct {
	Engine  *engine.Service
	Conn    *websocket.Conn
	Send    chan api.ServerResponse
	AgentID string

	updates <-chan api.ServerResponse
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewClient(svc *engine.Service, conn *websocket.Conn) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		Engine: svc,
		Conn:   conn,
		Send:   make(chan api.ServerResponse, 256),
		ctx:    ctx,
		cancel: cancel,
	}
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	defer func() {
		c.cancel()
		if c.updates != nil {
			c.Engine.Hub.Unregister(c.AgentID, c.updates)
			logger.Log.WithField("agent_id", c.AgentID).Info("Console disconnected")
		} else {
			close(c.Send)
		}
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection")
		}
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// 1. HANDSHAKE (LOGIN)
	var loginCmd api.ClientCommand
	if err := c.Conn.ReadJSON(&loginCmd); err != nil {
		logger.Log.WithError(err).Warn("Handshake failed")
		return
	}

	c.AgentID = loginCmd.Token
	if c.AgentID == "" {
		c.AgentID = utils.GenerateID()
	}

	// 2. ПОДПИСКА НА ЛОГИ МИРА
	c.updates = c.Engine.Hub.Register(c.AgentID)
	go c.forward()

	logger.Log.WithFields(logrus.Fields{
		"agent_id": c.AgentID,
		"remote":   c.Conn.RemoteAddr().String(),
	}).Info("Console logged in")

	// 3. INIT: создает агента, если его еще нет, и отдает его состояние
	if !c.dispatch(api.ClientCommand{Action: "INIT", Token: c.AgentID}) {
		return
	}

	// 4. ЦИКЛ ЧТЕНИЯ КОМАНД
	for {
		var cmd api.ClientCommand
		if err := c.Conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.WithError(err).Error("WS Error")
			}
			return
		}
		// Вытесненная консоль больше не командует агентом
		if c.ctx.Err() != nil {
			return
		}
		// Консоль не может действовать от чужого имени
		cmd.Token = c.AgentID
		if !c.dispatch(cmd) {
			return
		}
	}
}

// dispatch отправляет команду в движок и кладет ответ в очередь записи.
// false - движок остановлен или консоль отключилась.
func (c *Client) dispatch(cmd api.ClientCommand) bool {
	resp, err := c.Engine.ProcessCommand(c.ctx, cmd)
	if err != nil {
		if c.ctx.Err() != nil || errors.Is(err, engine.ErrStopped) {
			return false
		}
		resp = api.ServerResponse{
			Type: "ERROR",
			Logs: []api.LogEntry{{Text: err.Error(), Type: "ERROR", Timestamp: time.Now().UnixMilli()}},
		}
	}
	if !c.Engine.Hub.Reply(c.AgentID, c.updates, resp) {
		if c.ctx.Err() != nil {
			return false
		}
		logger.Log.WithField("agent_id", c.AgentID).Warn("Console queue is full, reply dropped")
	}
	return true
}

// forward перекладывает сообщения хаба в очередь записи. Закрытый канал
// хаба значит, что консоль вытеснена или отписана: клиент гасится,
// writePump закрывает соединение и readPump выходит из ReadJSON.
func (c *Client) forward() {
	defer close(c.Send)
	for {
		select {
		case msg, ok := <-c.updates:
			if !ok {
				if c.ctx.Err() == nil {
					logger.Log.WithField("agent_id", c.AgentID).Info("Console displaced")
				}
				c.cancel()
				return
			}
			select {
			case c.Send <- msg:
			case <-c.ctx.Done():
				return
			}
		case <-c.ctx.Done():
			return
		}
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
