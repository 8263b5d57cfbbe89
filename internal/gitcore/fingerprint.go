package gitcore

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// fingerprintHexSize is the width in hex characters of a Fingerprint result:
// 32 raw bytes from BLAKE3's default output size, hex-encoded.
const fingerprintHexSize = 64

// Fingerprint maps content bytes to a deterministic, lowercase hex digest.
// It depends only on the given bytes — never on wall-clock time or any other
// nondeterministic input — so that identical content always yields identical
// blob fingerprints and storage is deduplicated.
func Fingerprint(content []byte) Hash {
	h := blake3.New()
	_, _ = h.Write(content) // hash.Hash.Write never returns an error
	sum := h.Sum(nil)
	return Hash(hex.EncodeToString(sum))
}

// looksLikeFingerprint reports whether s has the shape of a value Fingerprint
// could have produced: fixed hex width, all hex digits (upper-case digits are
// accepted too, although Fingerprint only emits lower case). Used by
// the checkout engine to distinguish a commit fingerprint from a branch name.
func looksLikeFingerprint(s string) bool {
	if len(s) != fingerprintHexSize {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
