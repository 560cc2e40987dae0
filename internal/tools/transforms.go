package tools

import (
	"bytes"
	"crypto/md5"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PasswordAlphabet is the character set sampled by GeneratePassword.
const PasswordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*"

// PasswordLength is the number of characters in a generated password.
const PasswordLength = 16

// ParseError reports malformed JSON input. Its message is the parser's message.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FormatJSON re-indents JSON text with two spaces. Object key order and number
// literals are kept as written.
func FormatJSON(input string) (string, error) {
	var out bytes.Buffer
	if err := json.Indent(&out, []byte(input), "", "  "); err != nil {
		return "", &ParseError{Err: err}
	}
	return out.String(), nil
}

// EncodeBase64 returns the padded standard Base64 encoding of input.
func EncodeBase64(input string) (string, error) {
	if input == "" {
		return "", nil
	}
	return base64.StdEncoding.EncodeToString([]byte(input)), nil
}

// EncodeURL percent-encodes every byte outside the RFC 3986 unreserved set.
func EncodeURL(input string) (string, error) {
	if input == "" {
		return "", nil
	}
	const upperhex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(input) * 3)
	for i := 0; i < len(input); i++ {
		c := input[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}
	return b.String(), nil
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}

// HashText returns MD5, SHA-256 and SHA-512 digests, one per line.
func HashText(input string) (string, error) {
	if input == "" {
		return "", nil
	}
	data := []byte(input)
	md5Sum := md5.Sum(data)
	sha256Sum := sha256.Sum256(data)
	sha512Sum := sha512.Sum512(data)
	return fmt.Sprintf("MD5: %s\nSHA-256: %s\nSHA-512: %s",
		hex.EncodeToString(md5Sum[:]),
		hex.EncodeToString(sha256Sum[:]),
		hex.EncodeToString(sha512Sum[:]),
	), nil
}

// NewUUID returns a random version 4 UUID. The input is ignored.
func NewUUID(string) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return id.String(), nil
}

var passwordMax = big.NewInt(int64(len(PasswordAlphabet)))

// GeneratePassword returns PasswordLength characters drawn uniformly from
// PasswordAlphabet using crypto/rand. The input is ignored.
func GeneratePassword(string) (string, error) {
	out := make([]byte, PasswordLength)
	for i := range out {
		n, err := rand.Int(rand.Reader, passwordMax)
		if err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		out[i] = PasswordAlphabet[n.Int64()]
	}
	return string(out), nil
}

// Lower returns input with full Unicode lowercase mapping applied.
func Lower(input string) (string, error) {
	if input == "" {
		return "", nil
	}
	return cases.Lower(language.Und).String(input), nil
}
