package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"deepstore-server/internal/domain"
	"deepstore-server/internal/effects"
	"deepstore-server/internal/engine/handlers"
	"deepstore-server/internal/engine/handlers/actions"
	"deepstore-server/internal/infrastructure/storage"
	"deepstore-server/internal/network"
	"deepstore-server/internal/systems"
	"deepstore-server/pkg/api"
	"deepstore-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrUnknownAgent  = errors.New("unknown agent, send INIT first")
	ErrStopped       = errors.New("engine stopped")
)

// WorldStore - куда движок сохраняет мир.
type WorldStore interface {
	SaveWorld(ctx context.Context, rec storage.WorldRecord) error
	LoadWorld(ctx context.Context) (storage.WorldRecord, error)
}

// request - то, что приходит в поток симуляции. Либо команда, либо
// запрос на чтение состояния.
type request struct {
	cmd   domain.InternalCommand
	query func() any
	reply chan api.ServerResponse
}

// Service владеет миром. Все изменения мира идут через Run.
type Service struct {
	Config    Config
	World     *domain.World
	Registry  *domain.CommodityRegistry
	Recipes   *domain.RecipeBook
	Effects   *effects.Registry
	Lifecycle *systems.UnitLifecycle

	Hub   *network.Broadcaster
	Store WorldStore

	CommandChan chan request
	done        chan struct{}

	handlers map[domain.ActionType]handlers.HandlerFunc
	logSeq   uint64
}

// NewService собирает мир. store может быть nil - тогда мир живет только в памяти.
func NewService(cfg Config, store WorldStore) (*Service, error) {
	reg, err := BuildCatalog()
	if err != nil {
		return nil, err
	}
	recipes, err := BuildRecipes()
	if err != nil {
		return nil, err
	}
	fx, err := BuildEffects()
	if err != nil {
		return nil, err
	}

	s := &Service{
		Config:      cfg,
		World:       buildInitialWorld(cfg),
		Registry:    reg,
		Recipes:     recipes,
		Effects:     fx,
		Lifecycle:   systems.NewUnitLifecycle(reg),
		Hub:         network.NewBroadcaster(),
		Store:       store,
		CommandChan: make(chan request, 100),
		done:        make(chan struct{}),
		handlers:    make(map[domain.ActionType]handlers.HandlerFunc),
	}

	s.registerHandlers()
	return s, nil
}

func (s *Service) registerHandlers() {
	s.handlers[domain.ActionInit] = handlers.WithEmptyPayload(actions.HandleInit)
	s.handlers[domain.ActionPlace] = handlers.WithPayload(actions.HandlePlace)
	s.handlers[domain.ActionBreak] = handlers.WithPayload(actions.HandleBreak)
	s.handlers[domain.ActionDeposit] = handlers.WithPayload(actions.HandleDeposit)
	s.handlers[domain.ActionWithdraw] = handlers.WithPayload(actions.HandleWithdraw)
	s.handlers[domain.ActionInspect] = handlers.WithPayload(actions.HandleInspect)
	s.handlers[domain.ActionDrink] = handlers.WithPayload(actions.HandleDrink)
	s.handlers[domain.ActionPickup] = handlers.WithPayload(actions.HandlePickup)
}

// ProcessCommand принимает команду от внешнего мира (WebSocket) и ждет ответа.
func (s *Service) ProcessCommand(ctx context.Context, externalCmd api.ClientCommand) (api.ServerResponse, error) {
	actionType := domain.ParseAction(externalCmd.Action)
	if actionType == domain.ActionUnknown {
		return api.ServerResponse{}, fmt.Errorf("%w: %s", ErrUnknownAction, externalCmd.Action)
	}

	return s.Submit(ctx, domain.InternalCommand{
		Action:  actionType,
		Token:   externalCmd.Token, // ID агента, выполняющего действие
		Payload: externalCmd.Payload,
	})
}

// Submit ставит команду в очередь и ждет ответа или отмены ctx.
func (s *Service) Submit(ctx context.Context, cmd domain.InternalCommand) (api.ServerResponse, error) {
	return s.send(ctx, request{cmd: cmd})
}

// Query выполняет fn в потоке симуляции. Только для чтения состояния.
func (s *Service) Query(ctx context.Context, fn func() any) (any, error) {
	resp, err := s.send(ctx, request{query: fn})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (s *Service) send(ctx context.Context, req request) (api.ServerResponse, error) {
	req.reply = make(chan api.ServerResponse, 1)

	select {
	case s.CommandChan <- req:
	case <-s.done:
		return api.ServerResponse{}, ErrStopped
	case <-ctx.Done():
		return api.ServerResponse{}, ctx.Err()
	}

	select {
	case resp := <-req.reply:
		return resp, nil
	case <-s.done:
		return api.ServerResponse{}, ErrStopped
	case <-ctx.Done():
		return api.ServerResponse{}, ctx.Err()
	}
}

// --- GAME LOOP ---

// Run крутит мир до отмены ctx. При выходе мир сохраняется.
func (s *Service) Run(ctx context.Context) error {
	log := logger.Log.WithField("component", "engine")
	log.Info("Engine loop started")
	defer close(s.done)

	var tick, autosave <-chan time.Time
	if s.Config.TickInterval > 0 {
		t := time.NewTicker(s.Config.TickInterval)
		defer t.Stop()
		tick = t.C
	}
	if s.Store != nil && s.Config.SaveInterval > 0 {
		t := time.NewTicker(s.Config.SaveInterval)
		defer t.Stop()
		autosave = t.C
	}

	for {
		select {
		case <-ctx.Done():
			log.Info("Engine loop stopping")
			if s.Store == nil {
				return nil
			}
			// Родительский ctx уже отменен, сохраняемся со своим таймаутом.
			saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return s.Save(saveCtx)

		case req := <-s.CommandChan:
			if req.query != nil {
				req.reply <- api.ServerResponse{Type: "QUERY", Tick: int64(s.World.Tick), Data: req.query()}
				continue
			}
			req.reply <- s.executeCommand(req.cmd)

		case <-tick:
			s.World.Advance()

		case <-autosave:
			if err := s.Save(ctx); err != nil {
				log.WithError(err).Error("Autosave failed")
			}
		}
	}
}

// executeCommand выполняет хендлер и пишет логи
func (s *Service) executeCommand(cmd domain.InternalCommand) api.ServerResponse {
	agent := s.World.GetAgent(cmd.Token)
	if agent == nil {
		if cmd.Action != domain.ActionInit || cmd.Token == "" {
			return s.errorResponse(ErrUnknownAgent.Error())
		}
		agent = newAgent(cmd.Token, SpawnPos(s.World))
		s.World.RegisterAgent(agent)
		logger.Log.WithFields(logrus.Fields{
			"component": "engine",
			"agent_id":  agent.ID,
		}).Info("Agent joined")
	}

	handler, ok := s.handlers[cmd.Action]
	if !ok {
		return s.errorResponse(fmt.Sprintf("%s: %s", ErrUnknownAction, cmd.Action))
	}

	ctx := handlers.Context{
		World:     s.World,
		Agent:     agent,
		Registry:  s.Registry,
		Recipes:   s.Recipes,
		Lifecycle: s.Lifecycle,
		Effects:   s.Effects,
	}

	result, err := handler(ctx, cmd.Payload)
	if err != nil {
		return s.errorResponse(err.Error())
	}

	msgType := result.MsgType
	if msgType == "" {
		msgType = "INFO"
	}
	resp := api.ServerResponse{
		Type: "RESULT",
		Tick: int64(s.World.Tick),
		Data: result.Data,
	}
	if msgType == "ERROR" {
		resp.Type = "ERROR"
	}
	if result.Msg != "" {
		entry := s.AddLog(result.Msg, msgType)
		resp.Logs = []api.LogEntry{entry}
		if msgType != "ERROR" {
			if dropped := s.Hub.Broadcast(api.ServerResponse{Type: "LOG", Tick: resp.Tick, Logs: resp.Logs}); dropped > 0 {
				logger.Log.WithField("dropped", dropped).Debug("Log broadcast skipped slow consoles")
			}
		}
	}
	return resp
}

func (s *Service) errorResponse(text string) api.ServerResponse {
	return api.ServerResponse{
		Type: "ERROR",
		Tick: int64(s.World.Tick),
		Logs: []api.LogEntry{s.AddLog(text, "ERROR")},
	}
}
