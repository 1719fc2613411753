package storage

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"deepstore-server/internal/core/tag"

	"github.com/rotisserie/eris"
)

const (
	MagicHeader string = `DSTG` // 4 байта
	Version1    uint32 = 1
)

// FileHeader - заголовок каждого закодированного дерева атрибутов.
// binary.Write умеет писать это целиком, так как тут нет слайсов и строк, только массивы и числа.
type FileHeader struct {
	Magic   [4]byte // 4 байта
	Version uint32  // 4 байта
}

// Типы значений на проводе.
const (
	kindInt64 uint8 = iota + 1
	kindFloat64
	kindString
	kindBool
	kindBytes
	kindCompound
	kindList
)

const (
	maxDepth = 64
	maxLen   = 1 << 24

	// Сколько элементов выделяем заранее, пока не прочитали их на самом деле.
	maxPrealloc = 1024
)

// EncodeCompound кодирует дерево атрибутов в байты. Ключи пишутся по
// порядку, поэтому одно и то же дерево всегда дает одни и те же байты.
func EncodeCompound(c tag.Compound) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCompound(&buf, c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteCompound пишет заголовок и дерево.
func WriteCompound(w io.Writer, c tag.Compound) error {
	header := FileHeader{Version: Version1}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return eris.Wrap(err, "failed to write header")
	}
	return writeCompound(w, c.Copy(), 0)
}

func writeCompound(w io.Writer, c tag.Compound, depth int) error {
	if depth > maxDepth {
		return eris.Errorf("compound nested deeper than %d", maxDepth)
	}
	keys := c.Keys()
	if err := writeLen(w, len(keys)); err != nil {
		return err
	}
	for _, k := range keys {
		if err := writeString(w, k); err != nil {
			return eris.Wrapf(err, "key %q", k)
		}
		if err := writeValue(w, c[k], depth); err != nil {
			return eris.Wrapf(err, "value of %q", k)
		}
	}
	return nil
}

func writeValue(w io.Writer, v any, depth int) error {
	if depth > maxDepth {
		return eris.Errorf("value nested deeper than %d", maxDepth)
	}
	switch t := v.(type) {
	case int64:
		return writeTagged(w, kindInt64, t)
	case float64:
		return writeTagged(w, kindFloat64, math.Float64bits(t))
	case bool:
		var b uint8
		if t {
			b = 1
		}
		return writeTagged(w, kindBool, b)
	case string:
		if err := writeKind(w, kindString); err != nil {
			return err
		}
		return writeString(w, t)
	case []byte:
		if err := writeKind(w, kindBytes); err != nil {
			return err
		}
		return writeBytes(w, t)
	case tag.Compound:
		if err := writeKind(w, kindCompound); err != nil {
			return err
		}
		return writeCompound(w, t, depth+1)
	case []any:
		if err := writeKind(w, kindList); err != nil {
			return err
		}
		if err := writeLen(w, len(t)); err != nil {
			return err
		}
		for i, item := range t {
			if err := writeValue(w, item, depth+1); err != nil {
				return eris.Wrapf(err, "list item %d", i)
			}
		}
		return nil
	}
	return eris.Errorf("unsupported value type %T", v)
}

func writeKind(w io.Writer, k uint8) error {
	return binary.Write(w, binary.LittleEndian, k)
}

func writeTagged(w io.Writer, k uint8, data any) error {
	if err := writeKind(w, k); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, data)
}

func writeLen(w io.Writer, n int) error {
	if n > maxLen {
		return eris.Errorf("length %d exceeds limit %d", n, maxLen)
	}
	return binary.Write(w, binary.LittleEndian, uint32(n))
}

func writeString(w io.Writer, s string) error {
	return writeBytes(w, []byte(s))
}

func writeBytes(w io.Writer, b []byte) error {
	if err := writeLen(w, len(b)); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}
