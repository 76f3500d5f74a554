package common

import "encoding/binary"

// MakeKey builds a composite storage key from a tag byte and the given
// parts, concatenated in order.
func MakeKey(tag byte, parts ...[]byte) []byte {
	size := 1
	for _, p := range parts {
		size += len(p)
	}
	key := make([]byte, 1, size)
	key[0] = tag
	for _, p := range parts {
		key = append(key, p...)
	}
	return key
}

// Uint32Bytes encodes v as 4 big-endian bytes.
func Uint32Bytes(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

// BytesUint32 decodes a value written by Uint32Bytes. An absent (nil or
// short) value decodes as zero.
func BytesUint32(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}
