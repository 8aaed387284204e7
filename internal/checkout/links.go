package checkout

import (
	"fmt"
	"net/url"
	"strings"
)

// WhatsAppLink builds a wa.me deep link carrying the URL-encoded summary.
// The number is reduced to digits only, as wa.me rejects formatting.
func WhatsAppLink(number, text string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	if digits == "" {
		return ""
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, url.QueryEscape(text))
}

// TelegramLink builds a t.me deep link for the given handle.
func TelegramLink(handle, text string) string {
	handle = strings.TrimPrefix(strings.TrimSpace(handle), "@")
	if handle == "" {
		return ""
	}
	return fmt.Sprintf("https://t.me/%s?text=%s", handle, url.QueryEscape(text))
}
