package domain

import (
	"strings"

	"deepstore-server/internal/core/tag"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultNamespace подставляется, если в идентификаторе нет "namespace:".
const DefaultNamespace = "core"

// CanonicalID приводит идентификатор товара к виду "namespace:path".
// Пустая строка остается пустой.
func CanonicalID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return ""
	}
	if !strings.Contains(id, ":") {
		return DefaultNamespace + ":" + id
	}
	return id
}

// Registry - мировой реестр типов товаров. Только чтение.
// Неизвестный идентификатор - это "нет товара", а не ошибка.
type Registry interface {
	Resolve(id string) (CommodityType, bool)
}

// CommodityType - запись реестра.
type CommodityType struct {
	ID           string           `json:"id"`
	DisplayName  string           `json:"displayName,omitempty"`
	VariantNames map[int32]string `json:"variantNames,omitempty"`
}

// NameFor возвращает отображаемое имя для варианта.
// Порядок: имя варианта, DisplayName, path из ID с заглавными буквами.
func (t CommodityType) NameFor(variant int32) string {
	if name, ok := t.VariantNames[variant]; ok && name != "" {
		return name
	}
	if t.DisplayName != "" {
		return t.DisplayName
	}
	path := t.ID
	if i := strings.IndexByte(path, ':'); i >= 0 {
		path = path[i+1:]
	}
	path = strings.ReplaceAll(path, "_", " ")
	return cases.Title(language.English).String(path)
}

// Descriptor - идентичность хранимого товара: тип + вариант + доп. атрибуты.
type Descriptor struct {
	ID      string       `json:"id"`
	Variant int32        `json:"variant"`
	Extra   tag.Compound `json:"extra,omitempty"`
}

// NewDescriptor нормализует ID и копирует Extra, чтобы дескриптор
// не делил карту с вызывающим кодом. Отрицательный вариант становится 0.
func NewDescriptor(id string, variant int32, extra tag.Compound) Descriptor {
	if variant < 0 {
		variant = 0
	}
	d := Descriptor{ID: CanonicalID(id), Variant: variant}
	if len(extra) > 0 {
		d.Extra = extra.Copy()
	}
	return d
}

// HasExtra сообщает, несет ли единица товара дополнительные атрибуты.
func (d Descriptor) HasExtra() bool {
	return len(d.Extra) > 0
}

// Copy возвращает независимую копию.
func (d Descriptor) Copy() Descriptor {
	return NewDescriptor(d.ID, d.Variant, d.Extra)
}

// Equal - структурное сравнение.
func (d Descriptor) Equal(o Descriptor) bool {
	return CanonicalID(d.ID) == CanonicalID(o.ID) &&
		d.Variant == o.Variant &&
		d.Extra.Equal(o.Extra)
}

// Resolve ищет тип товара в реестре.
func (d Descriptor) Resolve(reg Registry) (CommodityType, bool) {
	if reg == nil || d.ID == "" {
		return CommodityType{}, false
	}
	return reg.Resolve(d.ID)
}

// Stack собирает стак из count единиц этого товара.
func (d Descriptor) Stack(count int) ItemStack {
	return ItemStack{
		Item:  d.ID,
		Count: count,
		Meta:  d.Variant,
		Tag:   d.Extra.Copy(),
	}
}
