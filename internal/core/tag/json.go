package tag

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UnmarshalJSON сохраняет целые числа целыми: без UseNumber все числа
// превратились бы в float64 и карта перестала бы совпадать с исходной.
func (c *Compound) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("invalid tag: %w", err)
	}
	if raw == nil {
		*c = nil
		return nil
	}
	*c = Compound(raw).Copy()
	return nil
}
