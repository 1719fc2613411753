package storage

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"deepstore-server/internal/core/tag"

	"github.com/rotisserie/eris"
)

// DecodeCompound читает дерево атрибутов, записанное EncodeCompound.
func DecodeCompound(b []byte) (tag.Compound, error) {
	r := bytes.NewReader(b)
	c, err := ReadCompound(r)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, eris.Errorf("%d trailing bytes after compound", r.Len())
	}
	return c, nil
}

// ReadCompound читает заголовок и дерево.
func ReadCompound(r io.Reader) (tag.Compound, error) {
	// 1. Читаем заголовок целиком
	var header FileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, eris.Wrap(err, "failed to read header")
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return nil, eris.New("invalid magic")
	}
	if header.Version != Version1 {
		return nil, eris.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}

	// 2. Читаем дерево
	return readCompound(r, 0)
}

func readCompound(r io.Reader, depth int) (tag.Compound, error) {
	if depth > maxDepth {
		return nil, eris.Errorf("compound nested deeper than %d", maxDepth)
	}
	n, err := readLen(r)
	if err != nil {
		return nil, err
	}
	c := make(tag.Compound, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		key, err := readString(r)
		if err != nil {
			return nil, eris.Wrapf(err, "key %d", i)
		}
		v, err := readValue(r, depth)
		if err != nil {
			return nil, eris.Wrapf(err, "value of %q", key)
		}
		c[key] = v
	}
	return c, nil
}

func readValue(r io.Reader, depth int) (any, error) {
	if depth > maxDepth {
		return nil, eris.Errorf("value nested deeper than %d", maxDepth)
	}
	var kind uint8
	if err := binary.Read(r, binary.LittleEndian, &kind); err != nil {
		return nil, err
	}

	switch kind {
	case kindInt64:
		var v int64
		err := binary.Read(r, binary.LittleEndian, &v)
		return v, err
	case kindFloat64:
		var bits uint64
		err := binary.Read(r, binary.LittleEndian, &bits)
		return math.Float64frombits(bits), err
	case kindBool:
		var b uint8
		err := binary.Read(r, binary.LittleEndian, &b)
		return b != 0, err
	case kindString:
		return readString(r)
	case kindBytes:
		return readBytes(r)
	case kindCompound:
		return readCompound(r, depth+1)
	case kindList:
		n, err := readLen(r)
		if err != nil {
			return nil, err
		}
		list := make([]any, 0, min(n, maxPrealloc))
		for i := 0; i < n; i++ {
			item, err := readValue(r, depth+1)
			if err != nil {
				return nil, eris.Wrapf(err, "list item %d", i)
			}
			list = append(list, item)
		}
		return list, nil
	}
	return nil, eris.Errorf("unknown value kind %d", kind)
}

func readLen(r io.Reader) (int, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return 0, err
	}
	if n > maxLen {
		return 0, eris.Errorf("length %d exceeds limit %d", n, maxLen)
	}
	return int(n), nil
}

func readString(r io.Reader) (string, error) {
	b, err := readBytes(r)
	return string(b), err
}

func readBytes(r io.Reader) ([]byte, error) {
	n, err := readLen(r)
	if err != nil {
		return nil, err
	}
	// Длине из блоба не верим: читаем столько, сколько реально есть.
	var buf bytes.Buffer
	buf.Grow(min(n, maxPrealloc))
	got, err := io.CopyN(&buf, r, int64(n))
	if err != nil {
		return nil, eris.Wrapf(err, "read %d bytes, got %d", n, got)
	}
	return buf.Bytes(), nil
}
