// Package qr handles payment links and QR codes: building and parsing
// the /pay link a user QR encodes, rendering codes for the terminal or
// to PNG, and decoding QR images. Decoding is the client's scan adapter:
// whatever it yields is fed into a wizard's input exactly as if typed.
package qr

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

var (
	cbuPattern  = regexp.MustCompile(`^\d{22}$`)
	codePattern = regexp.MustCompile(`^\d{6}$`)
)

// PayLink builds the shareable payment URL a user's QR encodes.
func PayLink(host, cbu string) (string, error) {
	if !cbuPattern.MatchString(cbu) {
		return "", fmt.Errorf("invalid cbu %q", cbu)
	}
	base := strings.TrimRight(host, "/")
	return base + "/pay?cbu=" + cbu, nil
}

// ParsePayLink extracts the CBU from a payment URL.
func ParsePayLink(link string) (string, error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("invalid payment link: %w", err)
	}
	if !strings.HasSuffix(u.Path, "/pay") {
		return "", fmt.Errorf("not a payment link: %s", link)
	}
	cbu := u.Query().Get("cbu")
	if !cbuPattern.MatchString(cbu) {
		return "", fmt.Errorf("payment link carries no valid cbu")
	}
	return cbu, nil
}

// ScanKind classifies what a scanned QR payload represents.
type ScanKind int

const (
	ScanUnknown ScanKind = iota
	// ScanPayLink is a /pay URL; Value holds the extracted CBU.
	ScanPayLink
	// ScanCBU is a bare 22-digit account identifier.
	ScanCBU
	// ScanWithdrawalCode is a 6-digit one-time code.
	ScanWithdrawalCode
)

// ScanResult is the classified payload of a decoded QR.
type ScanResult struct {
	Value string
	Kind  ScanKind
}

// Classify interprets a decoded QR payload. Exactly one value comes out
// of a scan; the caller feeds it into the matching wizard input.
func Classify(payload string) ScanResult {
	payload = strings.TrimSpace(payload)

	if cbu, err := ParsePayLink(payload); err == nil {
		return ScanResult{Kind: ScanPayLink, Value: cbu}
	}
	if cbuPattern.MatchString(payload) {
		return ScanResult{Kind: ScanCBU, Value: payload}
	}
	if codePattern.MatchString(payload) {
		return ScanResult{Kind: ScanWithdrawalCode, Value: payload}
	}
	return ScanResult{Kind: ScanUnknown, Value: payload}
}

// Render returns a terminal-printable QR code for the given content.
func Render(content string) (string, error) {
	code, err := qrcode.New(content, qrcode.High)
	if err != nil {
		return "", fmt.Errorf("failed to build qr code: %w", err)
	}
	return code.ToSmallString(false), nil
}

// WritePNG writes the QR code for content to a PNG file.
func WritePNG(content, path string, size int) error {
	if size <= 0 {
		size = 256
	}
	if err := qrcode.WriteFile(content, qrcode.High, size, path); err != nil {
		return fmt.Errorf("failed to write qr png: %w", err)
	}
	return nil
}
