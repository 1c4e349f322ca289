// Package objecthash produces canonical structural digests for the values
// stored on the blockchain. Two values with equal fields produce the same
// digest no matter how they are represented in memory.
package objecthash

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// Size is the length in bytes of every digest produced by this package.
const Size = sha256.Size

// Type tags prefixed to the data before hashing. The tag keeps values of
// different kinds from ever producing the same digest, so "1" and 1 differ.
const (
	tagNil     = 'n'
	tagBool    = 'b'
	tagInt     = 'i'
	tagUnicode = 'u'
	tagRaw     = 'r'
	tagList    = 'l'
	tagDict    = 'd'
)

// Field represents a named value that takes part in an entity digest.
type Field struct {
	Name  string
	Value any
}

// Hashable is implemented by any entity that declares the set of fields
// that make up its identity.
type Hashable interface {
	HashFields() []Field
}

// =============================================================================

// Digest returns the canonical digest for the specified value. Supported
// values are Hashable entities, strings, booleans, signed and unsigned
// integers, byte slices and arrays, slices and arrays of supported values,
// maps keyed by string and pointers to any of those.
func Digest(v any) []byte {
	return hashValue(v)
}

// Equal reports whether two values produce the same digest.
func Equal(a, b any) bool {
	return bytes.Equal(Digest(a), Digest(b))
}

// =============================================================================

func hashValue(v any) []byte {
	if h, ok := v.(Hashable); ok {
		return hashFields(h.HashFields())
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return tagged(tagNil, nil)
	}

	switch rv.Kind() {
	case reflect.String:
		return tagged(tagUnicode, []byte(rv.String()))

	case reflect.Bool:
		if rv.Bool() {
			return tagged(tagBool, []byte("1"))
		}
		return tagged(tagBool, []byte("0"))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return tagged(tagInt, []byte(strconv.FormatInt(rv.Int(), 10)))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return tagged(tagInt, []byte(strconv.FormatUint(rv.Uint(), 10)))

	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			raw := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(raw), rv)
			return tagged(tagRaw, raw)
		}

		var buf bytes.Buffer
		for i := 0; i < rv.Len(); i++ {
			buf.Write(hashValue(rv.Index(i).Interface()))
		}
		return tagged(tagList, buf.Bytes())

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			panic(fmt.Sprintf("objecthash: unsupported map key type %s", rv.Type().Key()))
		}

		fields := make([]Field, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			fields = append(fields, Field{Name: iter.Key().String(), Value: iter.Value().Interface()})
		}
		return hashFields(fields)

	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return tagged(tagNil, nil)
		}
		return hashValue(rv.Elem().Interface())
	}

	panic(fmt.Sprintf("objecthash: unsupported type %T", v))
}

// hashFields hashes each name and value pair and then hashes the sorted set
// of pairs. Sorting makes the digest independent of the order the fields
// are declared or iterated in.
func hashFields(fields []Field) []byte {
	pairs := make([][]byte, len(fields))
	for i, f := range fields {
		pair := make([]byte, 0, 2*Size)
		pair = append(pair, hashValue(f.Name)...)
		pair = append(pair, hashValue(f.Value)...)
		pairs[i] = pair
	}

	sort.Slice(pairs, func(i, j int) bool {
		return bytes.Compare(pairs[i], pairs[j]) < 0
	})

	return tagged(tagDict, bytes.Join(pairs, nil))
}

// tagged returns the sha256 of the tag followed by the data.
func tagged(tag byte, data []byte) []byte {
	h := sha256.New()
	h.Write([]byte{tag})
	h.Write(data)
	return h.Sum(nil)
}
