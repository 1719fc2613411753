package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"deepstore-server/pkg/api"
)

// ErrBadPayload - данные команды не разобрались или не прошли проверку.
var ErrBadPayload = errors.New("bad payload")

// TypedHandlerFunc - хендлер, который получает уже разобранную и проверенную структуру T
type TypedHandlerFunc[T any] func(ctx Context, payload T) (Result, error)

// EmptyHandlerFunc - хендлер без данных (INIT)
type EmptyHandlerFunc func(ctx Context) (Result, error)

// WithPayload превращает типизированный хендлер в HandlerFunc.
// Лишние поля и мусор после объекта считаются ошибкой клиента.
func WithPayload[T any](handler TypedHandlerFunc[T]) HandlerFunc {
	return func(ctx Context, raw json.RawMessage) (Result, error) {
		payload, err := decodePayload[T](raw)
		if err != nil {
			return Result{}, err
		}
		return handler(ctx, payload)
	}
}

// WithEmptyPayload - обертка для команд без данных. Что бы ни пришло, игнорируется.
func WithEmptyPayload(handler EmptyHandlerFunc) HandlerFunc {
	return func(ctx Context, _ json.RawMessage) (Result, error) {
		return handler(ctx)
	}
}

func decodePayload[T any](raw json.RawMessage) (T, error) {
	var payload T

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return payload, fmt.Errorf("%w: payload is required", ErrBadPayload)
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		return payload, fmt.Errorf("%w: invalid payload format: %v", ErrBadPayload, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return payload, fmt.Errorf("%w: unexpected data after payload", ErrBadPayload)
	}

	if v, ok := any(payload).(api.Validator); ok {
		if err := v.Validate(); err != nil {
			return payload, fmt.Errorf("%w: validation failed: %v", ErrBadPayload, err)
		}
	}
	return payload, nil
}
