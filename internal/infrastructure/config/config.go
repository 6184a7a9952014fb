package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

var ErrMissingGatewayCredentials = errors.New("missing PLACETOPAY_LOGIN or PLACETOPAY_TRANKEY")
var ErrMissingGatewayBaseURL = errors.New("missing PLACETOPAY_BASE_URL for custom mode")

// Gateway environments. Every mode but custom has a well-known base URL.
const (
	ModeDevelopment = "development"
	ModeTesting     = "testing"
	ModeProduction  = "production"
	ModeCustom      = "custom"
)

// Payment providers that can serve the redirect flow.
const (
	ProviderPlacetoPay  = "placetopay"
	ProviderMercadoPago = "mercadopago"
)

var modeBaseURLs = map[string]string{
	ModeDevelopment: "https://checkout-co.placetopay.dev/",
	ModeTesting:     "https://checkout-test.placetopay.com/",
	ModeProduction:  "https://checkout.placetopay.com/",
}

// GatewayConfig holds the checkout options.
//
// Supported env vars:
//   - PAYMENT_PROVIDER (placetopay | mercadopago, default: placetopay)
//   - PLACETOPAY_LOGIN, PLACETOPAY_TRANKEY
//   - PLACETOPAY_MODE (development | testing | production | custom, default: development)
//   - PLACETOPAY_BASE_URL (required for custom mode)
//   - PLACETOPAY_HEADERS ("Name:Value|Name:Value")
//   - CHECKOUT_EXPIRATION_MINUTES (default: 120)
//   - CHECKOUT_ALLOW_PARTIAL_PAYMENT, CHECKOUT_SKIP_RESULT
//   - CHECKOUT_FILL_BUYER_INFORMATION (default: true), CHECKOUT_FILL_TAX_INFORMATION
//   - CHECKOUT_TAX_RATE_MAPPING ("code:category|code:category")
//   - CHECKOUT_LOCALE (default: es_CO)
//   - CHECKOUT_RETURN_URL_BASE (default: http://localhost:8080)
//   - GATEWAY_TIMEOUT_SECONDS (default: 30)
//   - MERCADOPAGO_ACCESS_TOKEN, MERCADOPAGO_SANDBOX (mercadopago provider only)
type GatewayConfig struct {
	Provider string

	Login   string
	TranKey string
	BaseURL string
	Headers map[string]string
	Mode    string
	Timeout time.Duration

	ExpirationMinutes    int
	AllowPartialPayment  bool
	SkipResult           bool
	FillBuyerInformation bool
	FillTaxInformation   bool
	TaxRateMapping       string

	Locale        string
	ReturnURLBase string

	MercadoPagoAccessToken string
	MercadoPagoSandbox     bool
}

func LoadGatewayConfig() GatewayConfig {
	mode := strings.ToLower(getenvDefault("PLACETOPAY_MODE", ModeDevelopment))
	baseURL := strings.TrimSpace(os.Getenv("PLACETOPAY_BASE_URL"))
	if baseURL == "" {
		baseURL = modeBaseURLs[mode]
	}

	return GatewayConfig{
		Provider:             strings.ToLower(getenvDefault("PAYMENT_PROVIDER", ProviderPlacetoPay)),
		Login:                strings.TrimSpace(os.Getenv("PLACETOPAY_LOGIN")),
		TranKey:              strings.TrimSpace(os.Getenv("PLACETOPAY_TRANKEY")),
		BaseURL:              baseURL,
		Headers:              ParsePairs(os.Getenv("PLACETOPAY_HEADERS")),
		Mode:                 mode,
		Timeout:              time.Duration(getenvInt("GATEWAY_TIMEOUT_SECONDS", 30)) * time.Second,
		ExpirationMinutes:    getenvInt("CHECKOUT_EXPIRATION_MINUTES", 120),
		AllowPartialPayment:  getenvBool("CHECKOUT_ALLOW_PARTIAL_PAYMENT", false),
		SkipResult:           getenvBool("CHECKOUT_SKIP_RESULT", false),
		FillBuyerInformation: getenvBool("CHECKOUT_FILL_BUYER_INFORMATION", true),
		FillTaxInformation:   getenvBool("CHECKOUT_FILL_TAX_INFORMATION", false),
		TaxRateMapping:       os.Getenv("CHECKOUT_TAX_RATE_MAPPING"),
		Locale:               getenvDefault("CHECKOUT_LOCALE", "es_CO"),
		ReturnURLBase:        strings.TrimRight(getenvDefault("CHECKOUT_RETURN_URL_BASE", "http://localhost:8080"), "/"),

		MercadoPagoAccessToken: strings.TrimSpace(os.Getenv("MERCADOPAGO_ACCESS_TOKEN")),
		MercadoPagoSandbox:     getenvBool("MERCADOPAGO_SANDBOX", true),
	}
}

// Validate checks what the PlacetoPay client needs to authenticate.
func (c GatewayConfig) Validate() error {
	if c.Login == "" || c.TranKey == "" {
		return ErrMissingGatewayCredentials
	}
	if c.BaseURL == "" {
		return ErrMissingGatewayBaseURL
	}
	return nil
}

// TaxCategoryMap returns the tax code -> gateway tax kind remapping.
func (c GatewayConfig) TaxCategoryMap() map[string]string {
	return ParsePairs(c.TaxRateMapping)
}

// ParsePairs parses "key:value|key:value". Entries that are not exactly one
// key and one value are ignored.
func ParsePairs(raw string) map[string]string {
	out := map[string]string{}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return out
	}
	for _, item := range strings.Split(raw, "|") {
		parts := strings.Split(item, ":")
		if len(parts) != 2 {
			continue
		}
		k := strings.TrimSpace(parts[0])
		v := strings.TrimSpace(parts[1])
		if k == "" {
			continue
		}
		out[k] = v
	}
	return out
}

// IsPaymentGatewayMockEnabled reports whether outbound gateway calls are replaced
// by a local mock.
func IsPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "PLACETOPAY_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return v
}

func getenvBool(key string, def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return v
}
