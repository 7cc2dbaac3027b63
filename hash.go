package ccms

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// DefaultSalt is used when no deployment-specific salt is configured.
// Deployments should override it via config; the default only exists so
// development environments work out of the box.
const DefaultSalt = "ccms-default-salt"

// HashIdentity maps a wallet address (or any identity string) to a salted
// one-way digest. The digest is the only identity-derived value that may be
// persisted on anonymous paths.
func HashIdentity(identity, salt string) string {
	sum := sha256.Sum256([]byte(identity + salt))
	return hex.EncodeToString(sum[:])
}

// HashContent content-addresses arbitrary text, unsalted. Used to anchor
// feedback text and certificate payloads without storing a reversible copy.
func HashContent(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// VerifyHash recomputes the salted digest of original and compares it to
// digest in constant time.
func VerifyHash(original, digest, salt string) bool {
	computed := HashIdentity(original, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}

// VoteCommitment binds a choice to a voter identity and a nonce. Changing any
// input changes the digest. There is no reveal phase server-side; the linked
// voting application is expected to consume the commitment.
func VoteCommitment(choice, identity, nonce string) string {
	return HashContent(fmt.Sprintf("%s:%s:%s", choice, identity, nonce))
}
