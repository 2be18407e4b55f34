package record

import (
	"encoding/hex"
	"fmt"
	"strconv"
)

// Kind identifies the storage class of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindInteger
	KindReal
	KindText
	KindBlob
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "NULL"
	case KindInteger:
		return "INTEGER"
	case KindReal:
		return "REAL"
	case KindText:
		return "TEXT"
	case KindBlob:
		return "BLOB"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is a decoded record column: one of NULL, a 64-bit integer, a
// 64-bit float, text, or a blob. The zero Value is NULL.
type Value struct {
	kind Kind
	n    int64
	f    float64
	b    []byte
}

// Null returns the NULL value.
func Null() Value {
	return Value{kind: KindNull}
}

// Integer returns an INTEGER value.
func Integer(v int64) Value {
	return Value{kind: KindInteger, n: v}
}

// Real returns a REAL value.
func Real(v float64) Value {
	return Value{kind: KindReal, f: v}
}

// Text returns a TEXT value. The bytes are not copied.
func Text(b []byte) Value {
	return Value{kind: KindText, b: b}
}

// Blob returns a BLOB value. The bytes are not copied.
func Blob(b []byte) Value {
	return Value{kind: KindBlob, b: b}
}

// Kind reports the storage class.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is NULL.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Int64 returns the integer payload. Valid only for KindInteger.
func (v Value) Int64() int64 {
	return v.n
}

// Float64 returns the float payload. Valid only for KindReal.
func (v Value) Float64() float64 {
	return v.f
}

// Bytes returns the raw text or blob payload. Valid only for KindText
// and KindBlob.
func (v Value) Bytes() []byte {
	return v.b
}

// Text returns the text payload as a string.
func (v Value) Text() string {
	return string(v.b)
}

// String renders the value as a SQL literal, for diagnostics.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindInteger:
		return strconv.FormatInt(v.n, 10)
	case KindReal:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindText:
		return "'" + string(v.b) + "'"
	case KindBlob:
		return "x'" + hex.EncodeToString(v.b) + "'"
	default:
		return "?"
	}
}
