package systems

import (
	"fmt"

	"deepstore-server/internal/domain"
)

// Tooltip - строки подсказки к переносному хранилищу.
// Строка товара есть, только если товар нашелся в реестре;
// строка количества есть всегда, когда amount - целое число.
func Tooltip(stack domain.ItemStack, reg domain.Registry) []string {
	if !stack.IsUnit() || !stack.HasTag() {
		return nil
	}

	var lines []string
	decoded := DecodeUnit(stack.Tag, reg)
	if decoded.HasDescriptor {
		if t, ok := decoded.Descriptor.Resolve(reg); ok {
			lines = append(lines, fmt.Sprintf("commodity: %s", t.NameFor(decoded.Descriptor.Variant)))
		}
	}
	// Количество показываем как записано, даже отрицательное.
	if n, ok := stack.Tag.GetInt(KeyAmount); ok {
		lines = append(lines, fmt.Sprintf("amount: %d", n))
	}
	return lines
}
