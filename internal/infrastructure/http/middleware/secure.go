package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

// SecureOptions returns header options for a JSON-and-websocket API that
// serves no HTML: nothing may be embedded, framed or sniffed, and outside
// development browsers are pinned to TLS.
func SecureOptions(isDevelopment bool) secure.Options {
	opts := secure.Options{
		IsDevelopment:         isDevelopment,
		ContentTypeNosniff:    true,
		FrameDeny:             true,
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		ReferrerPolicy:        "no-referrer",
	}
	if !isDevelopment {
		opts.STSSeconds = 31536000
		opts.STSIncludeSubdomains = true
	}
	return opts
}

// NewSecure returns a middleware that adds security headers.
func NewSecure(opts secure.Options) func(next http.Handler) http.Handler {
	s := secure.New(opts)
	return s.Handler
}
