package tools

import (
	"errors"
	"fmt"
	"os"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	defaultQRBoxSize = 10
	qrFilePattern    = "qrcode-*.png"
	qrSavedKey       = "qr.saved"
)

// QRWriter encodes text as a QR code PNG. Each call creates a new file in Dir
// and never replaces an existing one.
type QRWriter struct {
	// Dir is the output directory; empty means the OS temp directory.
	Dir string
	// BoxSize is the pixel size of one module; zero means 10.
	BoxSize int
	// Level selects error correction: L, M, Q or H; empty means M.
	Level string
	// Messages renders the confirmation message.
	Messages Renderer
}

// Write encodes input and returns a confirmation naming the written file.
// Empty input is a no-op.
func (w QRWriter) Write(input string) (string, error) {
	if input == "" {
		return "", nil
	}
	level, err := ParseQRLevel(w.Level)
	if err != nil {
		return "", err
	}
	code, err := qrcode.New(input, level)
	if err != nil {
		return "", fmt.Errorf("encode qr: %w", err)
	}
	boxSize := w.BoxSize
	if boxSize <= 0 {
		boxSize = defaultQRBoxSize
	}
	// Negative size selects pixels per module; the 4-module quiet zone is kept.
	png, err := code.PNG(-boxSize)
	if err != nil {
		return "", fmt.Errorf("render qr: %w", err)
	}

	dir := w.Dir
	if strings.TrimSpace(dir) == "" {
		dir = os.TempDir()
	}
	file, err := os.CreateTemp(dir, qrFilePattern)
	if err != nil {
		return "", fmt.Errorf("create qr file: %w", err)
	}
	path := file.Name()
	if _, err := file.Write(png); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write qr file: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close qr file: %w", err)
	}
	return w.savedMessage(path), nil
}

func (w QRWriter) savedMessage(path string) string {
	fallback := "QR code saved to " + path
	if w.Messages == nil {
		return fallback
	}
	msg, err := w.Messages.Render(qrSavedKey, map[string]any{"Path": path})
	if err != nil {
		return fallback
	}
	return msg
}

// ParseQRLevel maps a level letter to a recovery level.
func ParseQRLevel(value string) (qrcode.RecoveryLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "L":
		return qrcode.Low, nil
	case "", "M":
		return qrcode.Medium, nil
	case "Q":
		return qrcode.High, nil
	case "H":
		return qrcode.Highest, nil
	default:
		return qrcode.Medium, errors.New("qr error correction level must be L, M, Q or H")
	}
}
