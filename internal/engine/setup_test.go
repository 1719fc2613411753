package engine

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"deepstore-server/pkg/api"
	"deepstore-server/pkg/logger"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init()

	// Exit with the result of the tests
	os.Exit(m.Run())
}

func testConfig() Config {
	cfg := NewConfig()
	cfg.Seed = 99
	cfg.WorldWidth = 16
	cfg.WorldHeight = 16
	cfg.PickupDelay = 0
	cfg.TickInterval = 0
	cfg.SaveInterval = 0
	return cfg
}

// startService запускает цикл и останавливает его в конце теста.
// Возвращает функцию, которая останавливает цикл раньше и ждет выхода.
func startService(t *testing.T, s *Service) func() error {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Run(ctx) }()

	var stopped bool
	var runErr error
	stop := func() error {
		if !stopped {
			cancel()
			runErr = <-errCh
			stopped = true
		}
		return runErr
	}
	t.Cleanup(func() { _ = stop() })
	return stop
}

func send(t *testing.T, s *Service, token, action string, payload any) api.ServerResponse {
	t.Helper()
	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		raw = b
	}
	resp, err := s.ProcessCommand(context.Background(), api.ClientCommand{Token: token, Action: action, Payload: raw})
	require.NoError(t, err)
	return resp
}
