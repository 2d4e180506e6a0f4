package middleware

import (
	"maps"
	"net/http"

	"github.com/eurodata/site/core/handler"
)

// SecurityHeadersConfig configures the security headers middleware.
// Empty fields are not sent.
type SecurityHeadersConfig struct {
	Skip func(ctx handler.Context) bool

	ContentTypeOptions        string
	FrameOptions              string
	StrictTransportSecurity   string
	ContentSecurityPolicy     string
	ReferrerPolicy            string
	PermissionsPolicy         string
	CrossOriginOpenerPolicy   string
	CrossOriginResourcePolicy string

	CustomHeaders map[string]string

	// IsDevelopment drops HSTS so local plain-HTTP runs are not pinned.
	IsDevelopment bool
}

var (
	// BalancedSecurity fits server-rendered pages that inline their theme
	// CSS and talk to the Supabase REST API from the browser.
	BalancedSecurity = SecurityHeadersConfig{
		ContentTypeOptions:      "nosniff",
		FrameOptions:            "SAMEORIGIN",
		StrictTransportSecurity: "max-age=31536000; includeSubDomains",
		ContentSecurityPolicy: "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; " +
			"img-src 'self' data:; connect-src 'self' https://*.supabase.co; " +
			"form-action 'self'; frame-ancestors 'self'; base-uri 'self'",
		ReferrerPolicy:            "strict-origin-when-cross-origin",
		PermissionsPolicy:         "geolocation=(), microphone=(), camera=()",
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginResourcePolicy: "same-origin",
	}

	// DevelopmentSecurity keeps only headers that never get in the way of
	// local tooling.
	DevelopmentSecurity = SecurityHeadersConfig{
		ContentTypeOptions: "nosniff",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		IsDevelopment:      true,
	}
)

// SecurityHeaders applies BalancedSecurity.
func SecurityHeaders[C handler.Context]() handler.Middleware[C] {
	return SecurityHeadersWithConfig[C](BalancedSecurity)
}

// SecurityHeadersWithConfig sets the configured headers on every response,
// including error responses rendered by the router.
func SecurityHeadersWithConfig[C handler.Context](cfg SecurityHeadersConfig) handler.Middleware[C] {
	if cfg.IsDevelopment {
		cfg.StrictTransportSecurity = ""
	}

	headers := make(map[string]string)
	set := func(name, value string) {
		if value != "" {
			headers[name] = value
		}
	}
	set("X-Content-Type-Options", cfg.ContentTypeOptions)
	set("X-Frame-Options", cfg.FrameOptions)
	set("Strict-Transport-Security", cfg.StrictTransportSecurity)
	set("Content-Security-Policy", cfg.ContentSecurityPolicy)
	set("Referrer-Policy", cfg.ReferrerPolicy)
	set("Permissions-Policy", cfg.PermissionsPolicy)
	set("Cross-Origin-Opener-Policy", cfg.CrossOriginOpenerPolicy)
	set("Cross-Origin-Resource-Policy", cfg.CrossOriginResourcePolicy)
	maps.Copy(headers, cfg.CustomHeaders)

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			response := next(ctx)
			if response == nil {
				return nil
			}

			return func(w http.ResponseWriter, r *http.Request) error {
				for key, value := range headers {
					w.Header().Set(key, value)
				}
				return response(w, r)
			}
		}
	}
}
