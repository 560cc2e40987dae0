package tools

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type stubRenderer struct{}

func (stubRenderer) Render(key string, data any) (string, error) {
	values := data.(map[string]any)
	return key + ":" + values["Path"].(string), nil
}

func TestQRWriterWritesUniqueFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w := QRWriter{Dir: dir}

	first, err := w.Write("https://example.com")
	if err != nil {
		t.Fatalf("Write error: %v", err)
	}
	second, err := w.Write("https://example.com")
	if err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if !strings.HasPrefix(first, "QR code saved to ") {
		t.Fatalf("unexpected message %q", first)
	}
	if first == second {
		t.Fatalf("two writes reported the same file: %q", first)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("files=%d want=2", len(entries))
	}
	for _, entry := range entries {
		if ok, _ := filepath.Match(qrFilePattern, entry.Name()); !ok {
			t.Fatalf("unexpected file name %q", entry.Name())
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			t.Fatalf("read png: %v", err)
		}
		if !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
			t.Fatalf("%s is not a PNG", entry.Name())
		}
	}
}

func TestQRWriterEmptyInputIsNoop(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out, err := QRWriter{Dir: dir}.Write("")
	if err != nil || out != "" {
		t.Fatalf("Write(\"\")=%q,%v want empty", out, err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("files=%d want=0", len(entries))
	}
}

func TestQRWriterUsesRenderer(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out, err := QRWriter{Dir: dir, Messages: stubRenderer{}}.Write("hi")
	if err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if !strings.HasPrefix(out, qrSavedKey+":"+dir) {
		t.Fatalf("message=%q want prefix %q", out, qrSavedKey+":"+dir)
	}
}

func TestQRWriterMissingDir(t *testing.T) {
	t.Parallel()

	_, err := QRWriter{Dir: filepath.Join(t.TempDir(), "missing")}.Write("hi")
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestParseQRLevel(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"", "l", "M", "q", "H"} {
		if _, err := ParseQRLevel(value); err != nil {
			t.Fatalf("ParseQRLevel(%q) error: %v", value, err)
		}
	}
	if _, err := ParseQRLevel("X"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
