package archive

import "crypto/sha256"

// ComputeChecksum hashes the encoded data section. The digest is stored in
// the fixed header at ChecksumOffset and recomputed by readers over the
// same little-endian bytes.
func ComputeChecksum(data []byte) [32]byte {
	return sha256.Sum256(data)
}
