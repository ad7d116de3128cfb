package cache

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// KeySeparator joins the store type identity and the record id before hashing.
const KeySeparator = "-"

// Hasher renders a fixed length hex digest of data.
type Hasher func(data []byte) string

// MD5Hasher renders the 128 bit MD5 digest of data as 32 hex characters.
// It is the default hasher and matches keys written by memcache deployments
// that use md5(type + "-" + id).
func MD5Hasher(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

// XXHasher renders the 64 bit xxhash digest of data as 16 hex characters.
// Shorter and faster than MD5, for deployments that do not share keys with
// other writers.
func XXHasher(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// hashKeyDeriver derives keys as hash(storeType + KeySeparator + id).
type hashKeyDeriver struct {
	hash Hasher
}

// NewKeyDeriver creates a KeyDeriver backed by the given hasher.
// A nil hasher falls back to MD5Hasher.
func NewKeyDeriver(hash Hasher) KeyDeriver {
	if hash == nil {
		hash = MD5Hasher
	}
	return &hashKeyDeriver{hash: hash}
}

// NewDefaultKeyDeriver creates the MD5 based KeyDeriver.
func NewDefaultKeyDeriver() KeyDeriver {
	return NewKeyDeriver(MD5Hasher)
}

// DeriveKey hashes storeType and id joined by KeySeparator. The store type is
// folded into the digest so two store types never share a key for the same id.
func (d *hashKeyDeriver) DeriveKey(storeType, id string) string {
	return d.hash([]byte(storeType + KeySeparator + id))
}
