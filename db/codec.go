package db

import "github.com/fxamacker/cbor/v2"

// Encode serializes a value for storage. CBOR is used instead of JSON for
// the on-disk representation: it is self-describing like JSON but more
// compact and does not require the felt hex-string round trip on every
// read, which matters on the hot read path of a query-serving node.
func Encode(v any) ([]byte, error) {
	return cbor.Marshal(v)
}

// Decode deserializes a value previously written with Encode.
func Decode(data []byte, out any) error {
	return cbor.Unmarshal(data, out)
}
