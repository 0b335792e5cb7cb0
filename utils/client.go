package utils

import (
	"fmt"
	"strings"

	ua "github.com/mileusna/useragent"
)

// ClientInfo is the parsed form of a User-Agent header.
type ClientInfo struct {
	Browser string
	OS      string
	Device  string
}

// ParseUserAgent extracts browser, OS and device class from a User-Agent string.
func ParseUserAgent(userAgent string) ClientInfo {
	info := ClientInfo{Browser: "Unknown Browser", OS: "Unknown OS", Device: "Desktop"}
	if userAgent == "" {
		return info
	}

	parsed := ua.Parse(userAgent)
	if parsed.Name != "" {
		info.Browser = strings.TrimSpace(parsed.Name)
	}
	if parsed.OS != "" {
		info.OS = strings.TrimSpace(parsed.OS)
	}

	switch {
	case parsed.Bot:
		info.Device = "Bot"
	case parsed.Mobile:
		info.Device = "Mobile"
	case parsed.Tablet:
		info.Device = "Tablet"
	}
	return info
}

// Label renders "Browser on OS".
func (c ClientInfo) Label() string {
	return fmt.Sprintf("%s on %s", c.Browser, c.OS)
}
