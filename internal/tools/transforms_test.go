package tools

import (
	"encoding/base64"
	"errors"
	"net/url"
	"regexp"
	"strings"
	"testing"
)

func TestFormatJSON(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "object", input: `{"key": "value"}`, want: "{\n  \"key\": \"value\"\n}"},
		{name: "key order kept", input: `{"b":1,"a":[1,2]}`, want: "{\n  \"b\": 1,\n  \"a\": [\n    1,\n    2\n  ]\n}"},
		{name: "empty object", input: `{}`, want: "{}"},
		{name: "scalar", input: `42`, want: "42"},
		{name: "nested", input: `{"a":{"b":null}}`, want: "{\n  \"a\": {\n    \"b\": null\n  }\n}"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := FormatJSON(tc.input)
			if err != nil {
				t.Fatalf("FormatJSON(%q) error: %v", tc.input, err)
			}
			if got != tc.want {
				t.Fatalf("FormatJSON(%q)=%q want=%q", tc.input, got, tc.want)
			}
		})
	}
}

func TestFormatJSONIsStable(t *testing.T) {
	t.Parallel()

	inputs := []string{`{"z":[1,{"y":true}],"a":"x"}`, `[ ]`, `"text"`, `{"n": 1.50e3}`}
	for _, input := range inputs {
		first, err := FormatJSON(input)
		if err != nil {
			t.Fatalf("FormatJSON(%q) error: %v", input, err)
		}
		second, err := FormatJSON(first)
		if err != nil {
			t.Fatalf("FormatJSON(formatted %q) error: %v", input, err)
		}
		if first != second {
			t.Fatalf("formatting not stable: %q then %q", first, second)
		}
	}
}

func TestFormatJSONRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "not json", `{"a":`, `{} {}`} {
		_, err := FormatJSON(input)
		if err == nil {
			t.Fatalf("FormatJSON(%q) expected error", input)
		}
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("FormatJSON(%q) error type %T, want *ParseError", input, err)
		}
		if parseErr.Error() != parseErr.Err.Error() {
			t.Fatalf("ParseError message %q differs from cause %q", parseErr.Error(), parseErr.Err.Error())
		}
	}
}

func TestEncodeBase64(t *testing.T) {
	t.Parallel()

	got, err := EncodeBase64("hello")
	if err != nil || got != "aGVsbG8=" {
		t.Fatalf("EncodeBase64(hello)=%q,%v want=aGVsbG8=", got, err)
	}
	if got, err := EncodeBase64(""); err != nil || got != "" {
		t.Fatalf("EncodeBase64(\"\")=%q,%v want empty", got, err)
	}

	for _, input := range []string{"a", "ab", "abc", "héllo wörld", "line\nbreak", "日本語"} {
		encoded, err := EncodeBase64(input)
		if err != nil {
			t.Fatalf("EncodeBase64(%q) error: %v", input, err)
		}
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			t.Fatalf("decode %q: %v", encoded, err)
		}
		if string(decoded) != input {
			t.Fatalf("round trip %q -> %q", input, decoded)
		}
	}
}

func TestEncodeURL(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":                  "",
		"abc-._~XYZ019":     "abc-._~XYZ019",
		"a b/c":             "a%20b%2Fc",
		"https://x.io/?q=1": "https%3A%2F%2Fx.io%2F%3Fq%3D1",
		"é":                 "%C3%A9",
		"100%":              "100%25",
	}
	for input, want := range cases {
		got, err := EncodeURL(input)
		if err != nil {
			t.Fatalf("EncodeURL(%q) error: %v", input, err)
		}
		if got != want {
			t.Fatalf("EncodeURL(%q)=%q want=%q", input, got, want)
		}
	}
}

func TestEncodeURLRoundTrip(t *testing.T) {
	t.Parallel()

	escaped := regexp.MustCompile(`^([A-Za-z0-9._~-]|%[0-9A-F]{2})*$`)
	for _, input := range []string{"a+b=c&d", "path/to file", "snow ☃ man", "tab\tquote\"'"} {
		encoded, err := EncodeURL(input)
		if err != nil {
			t.Fatalf("EncodeURL(%q) error: %v", input, err)
		}
		if !escaped.MatchString(encoded) {
			t.Fatalf("EncodeURL(%q)=%q has unescaped reserved characters", input, encoded)
		}
		decoded, err := url.PathUnescape(encoded)
		if err != nil {
			t.Fatalf("unescape %q: %v", encoded, err)
		}
		if decoded != input {
			t.Fatalf("round trip %q -> %q", input, decoded)
		}
	}
}

func TestHashText(t *testing.T) {
	t.Parallel()

	got, err := HashText("abc")
	if err != nil {
		t.Fatalf("HashText(abc) error: %v", err)
	}
	want := strings.Join([]string{
		"MD5: 900150983cd24fb0d6963f7d28e17f72",
		"SHA-256: ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		"SHA-512: ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f",
	}, "\n")
	if got != want {
		t.Fatalf("HashText(abc)=\n%s\nwant=\n%s", got, want)
	}

	if got, err := HashText(""); err != nil || got != "" {
		t.Fatalf("HashText(\"\")=%q,%v want empty", got, err)
	}
}

var uuidV4 = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestNewUUID(t *testing.T) {
	t.Parallel()

	first, err := NewUUID("ignored")
	if err != nil {
		t.Fatalf("NewUUID error: %v", err)
	}
	second, err := NewUUID("")
	if err != nil {
		t.Fatalf("NewUUID error: %v", err)
	}
	for _, id := range []string{first, second} {
		if !uuidV4.MatchString(id) {
			t.Fatalf("%q is not a canonical v4 uuid", id)
		}
	}
	if first == second {
		t.Fatalf("two uuids are equal: %s", first)
	}
}

func TestGeneratePassword(t *testing.T) {
	t.Parallel()

	if len(PasswordAlphabet) != 70 {
		t.Fatalf("alphabet size=%d want=70", len(PasswordAlphabet))
	}

	seen := map[string]struct{}{}
	for i := 0; i < 50; i++ {
		pw, err := GeneratePassword("ignored")
		if err != nil {
			t.Fatalf("GeneratePassword error: %v", err)
		}
		if len(pw) != PasswordLength {
			t.Fatalf("len(%q)=%d want=%d", pw, len(pw), PasswordLength)
		}
		for _, r := range pw {
			if !strings.ContainsRune(PasswordAlphabet, r) {
				t.Fatalf("password %q has character %q outside the alphabet", pw, r)
			}
		}
		seen[pw] = struct{}{}
	}
	if len(seen) != 50 {
		t.Fatalf("expected 50 distinct passwords, got %d", len(seen))
	}
}

func TestLower(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":         "",
		"ABC def":  "abc def",
		"ÀÉÎ Ünï":  "àéî ünï",
		"ПРИВЕТ":   "привет",
		"MiXeD 42": "mixed 42",
	}
	for input, want := range cases {
		got, err := Lower(input)
		if err != nil {
			t.Fatalf("Lower(%q) error: %v", input, err)
		}
		if got != want {
			t.Fatalf("Lower(%q)=%q want=%q", input, got, want)
		}
	}
}
