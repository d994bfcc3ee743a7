package build

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/rigcheck/internal/part"
)

// DomainBuild separates build fingerprints from any other hash in the system.
const DomainBuild = "rigcheck/build/v1"

// Fingerprint returns a stable identity for the selection in s.
// Two snapshots with the same component IDs in the same categories have the
// same fingerprint regardless of prices or specs.
//
// Format: SHA256(domain + 0x00 + "category=id\n"...) in canonical category order,
// with IDs NFC normalized.
func Fingerprint(s Snapshot) string {
	h := sha256.New()
	h.Write([]byte(DomainBuild))
	h.Write([]byte{0x00})
	for _, cat := range part.Categories {
		c, ok := s.Get(cat)
		if !ok {
			continue
		}
		h.Write([]byte(cat))
		h.Write([]byte{'='})
		h.Write([]byte(norm.NFC.String(c.ID)))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
