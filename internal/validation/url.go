package validation

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// TargetKind classifies a validated navigation target.
type TargetKind int

const (
	TargetWeb TargetKind = iota
	TargetFile
	TargetMail
	TargetRelative
)

// TargetValidator checks URLs before they are handed to the system opener
type TargetValidator struct {
	// AllowPrivateHosts permits localhost and private IP addresses,
	// which intranet applications usually need
	AllowPrivateHosts bool
	// MaxLength is the maximum allowed URL length
	MaxLength int
}

// NewTargetValidator creates a validator for intranet use
func NewTargetValidator(allowPrivate bool) *TargetValidator {
	return &TargetValidator{
		AllowPrivateHosts: allowPrivate,
		MaxLength:         2048,
	}
}

// Validate returns the trimmed target and its kind.
func (v *TargetValidator) Validate(input string) (string, TargetKind, error) {
	input = strings.TrimSpace(input)

	if input == "" {
		return "", 0, fmt.Errorf("URL cannot be empty")
	}
	if len(input) > v.MaxLength {
		return "", 0, fmt.Errorf("URL too long (max %d characters)", v.MaxLength)
	}
	for _, char := range input {
		if char < 32 || char == 127 {
			return "", 0, fmt.Errorf("URL contains control characters")
		}
	}

	parsedURL, err := url.Parse(input)
	if err != nil {
		return "", 0, fmt.Errorf("invalid URL format: %w", err)
	}

	switch strings.ToLower(parsedURL.Scheme) {
	case "":
		return input, TargetRelative, nil
	case "http", "https":
		if parsedURL.Host == "" {
			return "", 0, fmt.Errorf("URL must have a valid hostname")
		}
		if err := v.validateHost(parsedURL.Host); err != nil {
			return "", 0, err
		}
		return input, TargetWeb, nil
	case "file":
		return input, TargetFile, nil
	case "mailto":
		return input, TargetMail, nil
	default:
		return "", 0, fmt.Errorf("URL scheme %q is not permitted", parsedURL.Scheme)
	}
}

// validateHost performs security checks on the hostname
func (v *TargetValidator) validateHost(host string) error {
	hostname := host
	if strings.Contains(host, ":") {
		var err error
		hostname, _, err = net.SplitHostPort(host)
		if err != nil {
			return fmt.Errorf("invalid host format: %w", err)
		}
	}

	if v.AllowPrivateHosts {
		return nil
	}
	if isLocalhost(hostname) {
		return fmt.Errorf("localhost URLs are not permitted")
	}
	if ip := net.ParseIP(hostname); ip != nil && isPrivateIP(ip) {
		return fmt.Errorf("private IP addresses are not permitted")
	}
	return nil
}

// isLocalhost checks if a hostname refers to localhost
func isLocalhost(hostname string) bool {
	return hostname == "localhost" ||
		hostname == "127.0.0.1" ||
		hostname == "::1" ||
		strings.HasSuffix(hostname, ".localhost")
}

// isPrivateIP checks if an IP address is in a private range
func isPrivateIP(ip net.IP) bool {
	return ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast()
}
