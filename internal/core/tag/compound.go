// Package tag описывает дерево атрибутов, которое путешествует вместе с предметом.
//
// Compound - это нетипизированная карта ключ -> значение. Ядро её не
// интерпретирует: только копирует, сравнивает и переносит.
// Допустимые значения после нормализации:
//
//	int64, float64, string, bool, []byte, Compound, []any
package tag

import (
	"encoding/json"
	"math"
	"reflect"
	"sort"

	"github.com/spf13/cast"
)

// Compound - карта атрибутов. nil и пустая карта эквивалентны.
type Compound map[string]any

// New создает пустую карту.
func New() Compound {
	return make(Compound)
}

// Has сообщает, есть ли ключ.
func (c Compound) Has(key string) bool {
	if c == nil {
		return false
	}
	_, ok := c[key]
	return ok
}

// GetInt читает целое. Значение приводится мягко: int32, float64 из JSON,
// числовая строка. Если привести нельзя - ok=false. bool числом не считается.
func (c Compound) GetInt(key string) (int64, bool) {
	v, ok := c[key]
	if !ok {
		return 0, false
	}
	switch v.(type) {
	case bool, Compound, map[string]any, []any, []byte:
		return 0, false
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// GetString читает строку. Вложенные карты и списки строкой не считаются.
func (c Compound) GetString(key string) (string, bool) {
	v, ok := c[key]
	if !ok {
		return "", false
	}
	switch v.(type) {
	case Compound, map[string]any, []any, []byte:
		return "", false
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	return s, true
}

// GetCompound читает вложенную карту.
func (c Compound) GetCompound(key string) (Compound, bool) {
	switch v := c[key].(type) {
	case Compound:
		return v, true
	case map[string]any:
		return Compound(v), true
	}
	return nil, false
}

// SetInt записывает целое.
func (c Compound) SetInt(key string, v int64) { c[key] = v }

// SetString записывает строку.
func (c Compound) SetString(key string, v string) { c[key] = v }

// SetCompound записывает вложенную карту как есть (без копии).
func (c Compound) SetCompound(key string, v Compound) { c[key] = v }

// Delete удаляет ключ.
func (c Compound) Delete(key string) { delete(c, key) }

// Keys возвращает ключи в детерминированном порядке.
func (c Compound) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Copy делает глубокую копию и заодно нормализует числовые типы.
// Значения неподдерживаемых типов отбрасываются.
func (c Compound) Copy() Compound {
	if c == nil {
		return nil
	}
	out := make(Compound, len(c))
	for k, v := range c {
		if nv, ok := normalize(v); ok {
			out[k] = nv
		}
	}
	return out
}

// Equal - структурное равенство. nil и пустая карта равны.
func (c Compound) Equal(other Compound) bool {
	if len(c) == 0 && len(other) == 0 {
		return true
	}
	return reflect.DeepEqual(c.Copy(), other.Copy())
}

func normalize(v any) (any, bool) {
	switch t := v.(type) {
	case int64:
		return t, true
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case uint8:
		return int64(t), true
	case uint16:
		return int64(t), true
	case uint32:
		return int64(t), true
	case uint:
		if uint64(t) > math.MaxInt64 {
			return float64(t), true
		}
		return int64(t), true
	case uint64:
		if t > math.MaxInt64 {
			return float64(t), true
		}
		return int64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, true
		}
		if f, err := t.Float64(); err == nil {
			return f, true
		}
		return nil, false
	case string:
		return t, true
	case bool:
		return t, true
	case []byte:
		b := make([]byte, len(t))
		copy(b, t)
		return b, true
	case Compound:
		return t.Copy(), true
	case map[string]any:
		return Compound(t).Copy(), true
	case []any:
		list := make([]any, 0, len(t))
		for _, item := range t {
			if nv, ok := normalize(item); ok {
				list = append(list, nv)
			}
		}
		return list, true
	}
	return nil, false
}
