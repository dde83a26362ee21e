// Package cryptox turns passwords into one-way argon2id digests and checks
// candidates against them.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/Breathless11/Tamamla/internal/common"
	"golang.org/x/crypto/argon2"
)

const scheme = "argon2id"

var ErrMalformedDigest = errors.New("malformed credential digest")

// Params are the argon2id cost parameters. They are recorded inside every
// digest, so changing them later does not invalidate existing accounts.
type Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	SaltLen int
	KeyLen  uint32
}

// DefaultParams matches the cost used for master keys elsewhere in the
// ecosystem: one pass over 64 MiB with four lanes.
var DefaultParams = Params{Time: 1, Memory: 64 * 1024, Threads: 4, SaltLen: 16, KeyLen: 32}

func DeriveKey(password, salt []byte, p Params) []byte {
	return argon2.IDKey(password, salt, p.Time, p.Memory, p.Threads, p.KeyLen)
}

// DigestPassword derives a salted digest of password in the form
//
//	argon2id$m=65536,t=1,p=4$<salt base64>$<key base64>
func DigestPassword(password []byte, p Params) string {
	salt := common.GenerateRandByteArray(p.SaltLen)
	key := DeriveKey(password, salt, p)

	return fmt.Sprintf("%s$m=%d,t=%d,p=%d$%s$%s", scheme, p.Memory, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))
}

// VerifyPassword reports whether password matches digest. The key comparison
// is constant time.
func VerifyPassword(digest string, password []byte) (bool, error) {
	p, salt, key, err := parseDigest(digest)
	if err != nil {
		return false, err
	}
	candidate := DeriveKey(password, salt, p)
	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}

func parseDigest(digest string) (Params, []byte, []byte, error) {
	parts := strings.Split(digest, "$")
	if len(parts) != 4 || parts[0] != scheme {
		return Params{}, nil, nil, ErrMalformedDigest
	}

	var p Params
	if _, err := fmt.Sscanf(parts[1], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return Params{}, nil, nil, fmt.Errorf("%w: %v", ErrMalformedDigest, err)
	}
	if p.Memory == 0 || p.Time == 0 || p.Threads == 0 {
		return Params{}, nil, nil, fmt.Errorf("%w: zero cost parameter", ErrMalformedDigest)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil {
		return Params{}, nil, nil, fmt.Errorf("%w: salt: %v", ErrMalformedDigest, err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil || len(key) == 0 {
		return Params{}, nil, nil, fmt.Errorf("%w: key", ErrMalformedDigest)
	}

	p.SaltLen = len(salt)
	p.KeyLen = uint32(len(key))
	return p, salt, key, nil
}
