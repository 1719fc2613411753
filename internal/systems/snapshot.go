package systems

import (
	"deepstore-server/internal/core/tag"
	"deepstore-server/internal/domain"
	"deepstore-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Ключи атрибутов переносного снимка. Менять нельзя: они лежат в сохранениях.
const (
	KeyAmount  = "amount"
	KeyItem    = "item"
	KeyMeta    = "meta"
	KeyItemTag = "item_tag"
)

// Decoded - то, что удалось прочитать из снимка. Каждое поле
// разбирается независимо: нет товара - еще не значит, что нет количества.
type Decoded struct {
	Descriptor    domain.Descriptor
	HasDescriptor bool

	Quantity    uint64
	HasQuantity bool

	// Unresolved - сырые поля идентичности, если ключ item был,
	// но товар не нашелся в реестре.
	Unresolved tag.Compound
}

// EncodeUnit переводит состояние хранилища в карту атрибутов.
// Пустое хранилище дает nil: ни одного ключа.
func EncodeUnit(u *domain.StorageUnit) tag.Compound {
	if u == nil || u.Quantity() == 0 {
		return nil
	}

	c := tag.New()
	c.SetInt(KeyAmount, int64(clampQuantity(u.Quantity())))

	d, ok := u.Descriptor()
	if !ok {
		// Количество есть, товара нет: вернем сырые поля как были.
		for k, v := range u.Unresolved() {
			c[k] = v
		}
		return c
	}

	c.SetString(KeyItem, domain.CanonicalID(d.ID))
	c.SetInt(KeyMeta, int64(d.Variant))
	if d.HasExtra() {
		c.SetCompound(KeyItemTag, d.Extra.Copy())
	}
	return c
}

// DecodeUnit читает карту атрибутов. Никогда не падает: все, что
// прочитать нельзя, становится "ничего".
func DecodeUnit(c tag.Compound, reg domain.Registry) Decoded {
	var out Decoded
	if c == nil {
		return out
	}

	if n, ok := c.GetInt(KeyAmount); ok && n >= 0 {
		out.Quantity = uint64(n)
		out.HasQuantity = true
	}

	rawID, ok := c.GetString(KeyItem)
	if !ok {
		return out
	}

	variant := int32(0)
	if m, ok := c.GetInt(KeyMeta); ok && m >= 0 && m <= maxVariant {
		variant = int32(m)
	}
	var extra tag.Compound
	if t, ok := c.GetCompound(KeyItemTag); ok {
		extra = t
	}

	d := domain.NewDescriptor(rawID, variant, extra)
	if _, ok := d.Resolve(reg); !ok {
		logger.Log.WithFields(logrus.Fields{
			"component": "snapshot",
			"item":      rawID,
		}).Debug("Snapshot commodity does not resolve, treating as absent")
		out.Unresolved = rawIdentity(c)
		return out
	}

	out.Descriptor = d
	out.HasDescriptor = true
	return out
}

// Apply переносит прочитанное в хранилище.
func (d Decoded) Apply(u *domain.StorageUnit) {
	if d.HasDescriptor {
		u.SetDescriptor(d.Descriptor)
	} else if len(d.Unresolved) > 0 {
		u.SetUnresolved(d.Unresolved)
	}
	if d.HasQuantity {
		u.SetQuantity(d.Quantity)
	}
}

// --- ПЕРЕНОСНОЙ ПРЕДМЕТ ---

// NewSnapshot собирает ровно один переносной предмет с состоянием хранилища.
func NewSnapshot(u *domain.StorageUnit) domain.ItemStack {
	stack := domain.NewUnitItem()
	stack.Tag = EncodeUnit(u)
	return stack
}

// SnapshotDescriptor читает товар из переносного предмета.
func SnapshotDescriptor(stack domain.ItemStack, reg domain.Registry) (domain.Descriptor, bool) {
	d := DecodeUnit(stack.Tag, reg)
	return d.Descriptor, d.HasDescriptor
}

// SnapshotAmount читает количество. Нет ключа - 0.
func SnapshotAmount(stack domain.ItemStack) uint64 {
	return DecodeUnit(stack.Tag, nil).Quantity
}

// SetSnapshotAmount меняет количество, только если у предмета уже есть атрибуты.
func SetSnapshotAmount(stack *domain.ItemStack, amount uint64) {
	if stack.Tag == nil {
		return
	}
	stack.Tag.SetInt(KeyAmount, int64(clampQuantity(amount)))
}

// SetSnapshotDescriptor записывает товар, создавая атрибуты при необходимости.
func SetSnapshotDescriptor(stack *domain.ItemStack, d domain.Descriptor) {
	if stack.Tag == nil {
		stack.Tag = tag.New()
	}
	stack.Tag.SetString(KeyItem, domain.CanonicalID(d.ID))
	stack.Tag.SetInt(KeyMeta, int64(d.Variant))
	if d.HasExtra() {
		stack.Tag.SetCompound(KeyItemTag, d.Extra.Copy())
	} else {
		stack.Tag.Delete(KeyItemTag)
	}
}

// --- helpers ---

const maxVariant = 1<<31 - 1

// Атрибуты хранят знаковое int64. Больше domain.MaxQuantity честным
// путем не набрать, SetQuantity выше - срезаем.
func clampQuantity(q uint64) uint64 {
	if q > domain.MaxQuantity {
		return domain.MaxQuantity
	}
	return q
}

func rawIdentity(c tag.Compound) tag.Compound {
	raw := tag.New()
	for _, k := range []string{KeyItem, KeyMeta, KeyItemTag} {
		if v, ok := c[k]; ok {
			raw[k] = v
		}
	}
	return raw.Copy()
}
