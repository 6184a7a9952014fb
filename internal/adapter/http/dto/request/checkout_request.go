package request

import "strings"

// CheckoutRedirectRequest optionally carries the buyer's browser details when
// the redirect is requested server-to-server on the buyer's behalf. Empty
// fields fall back to the calling request.
type CheckoutRedirectRequest struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
}

func (r CheckoutRedirectRequest) ResolveIPAddress(fallback string) string {
	if v := strings.TrimSpace(r.IPAddress); v != "" {
		return v
	}
	return fallback
}

func (r CheckoutRedirectRequest) ResolveUserAgent(fallback string) string {
	if v := strings.TrimSpace(r.UserAgent); v != "" {
		return v
	}
	return fallback
}
