// Package db provides the key encoding and value codec shared by the
// Pebble-backed storage adapter. Keys are a one-byte bucket prefix
// followed by a fixed-width big-endian index, matching the teacher's
// convention of prefixing every key with a bucket byte so a single Pebble
// instance can hold multiple logical tables.
package db

import "encoding/binary"

type Bucket byte

const (
	BucketBlockByNumber      Bucket = 0x01
	BucketBlockNumberByHash  Bucket = 0x03
	BucketStateUpdateByHash  Bucket = 0x04
	BucketContractCode       Bucket = 0x05
	BucketStorageValue       Bucket = 0x06
	BucketTransaction        Bucket = 0x07
	BucketTransactionReceipt Bucket = 0x08
	BucketBlockTxIndex       Bucket = 0x09
	BucketHeaderByNumber     Bucket = 0x0a
	BucketChainHead          Bucket = 0x0b
)

// KeyNumber builds a bucket key for a uint64-indexed record.
func KeyNumber(b Bucket, n uint64) []byte {
	key := make([]byte, 1+8)
	key[0] = byte(b)
	binary.BigEndian.PutUint64(key[1:], n)
	return key
}

// KeyBytes builds a bucket key for a byte-slice-indexed record (a hash or
// an address).
func KeyBytes(b Bucket, id []byte) []byte {
	key := make([]byte, 1+len(id))
	key[0] = byte(b)
	copy(key[1:], id)
	return key
}

// KeyBytesBytes builds a two-part composite key (contract address + storage
// key, for instance).
func KeyBytesBytes(b Bucket, a, c []byte) []byte {
	key := make([]byte, 1+len(a)+len(c))
	key[0] = byte(b)
	n := copy(key[1:], a)
	copy(key[1+n:], c)
	return key
}
