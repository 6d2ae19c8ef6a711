package middleware

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// wildcardOrigin matches origins of the form scheme + <single label> + suffix,
// e.g. the pattern "https://*.haven-app.pages.dev" matches
// "https://abc123.haven-app.pages.dev" but not nested subdomains.
type wildcardOrigin struct {
	scheme string
	suffix string
}

// parseWildcardOrigin returns nil unless pattern is a well-formed wildcard:
// an http(s) scheme, exactly one "*" directly after the scheme, and a suffix
// covering at least two domain parts.
func parseWildcardOrigin(pattern string) *wildcardOrigin {
	var scheme string
	switch {
	case strings.HasPrefix(pattern, "https://"):
		scheme = "https://"
	case strings.HasPrefix(pattern, "http://"):
		scheme = "http://"
	default:
		return nil
	}

	rest := pattern[len(scheme):]
	if strings.Count(rest, "*") != 1 || !strings.HasPrefix(rest, "*") {
		return nil
	}

	suffix := rest[1:]
	if !strings.HasPrefix(suffix, ".") || strings.Count(suffix, ".") < 2 {
		return nil
	}

	return &wildcardOrigin{scheme: scheme, suffix: suffix}
}

func (w *wildcardOrigin) matches(origin string) bool {
	if !strings.HasPrefix(origin, w.scheme) || !strings.HasSuffix(origin, w.suffix) {
		return false
	}
	label := origin[len(w.scheme) : len(origin)-len(w.suffix)]
	return label != "" && !strings.Contains(label, ".")
}

// CORS restricts cross-origin requests to the configured origins.
//
// HAVEN_CORS_ALLOWED_ORIGINS is a comma-separated list of exact origins or
// wildcard patterns such as "https://*.haven-app.pages.dev". When unset, all
// origins are allowed.
func CORS() gin.HandlerFunc {
	raw := os.Getenv("HAVEN_CORS_ALLOWED_ORIGINS")
	allowAll := raw == ""

	var exact []string
	var wildcards []*wildcardOrigin
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if w := parseWildcardOrigin(part); w != nil {
			wildcards = append(wildcards, w)
		} else {
			exact = append(exact, part)
		}
	}

	originAllowed := func(origin string) bool {
		for _, o := range exact {
			if origin == o {
				return true
			}
		}
		for _, w := range wildcards {
			if w.matches(origin) {
				return true
			}
		}
		return false
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else if originAllowed(origin) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		} else if c.Request.Method == "OPTIONS" {
			// Disallowed origin, reject the preflight outright.
			c.AbortWithStatus(403)
			return
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
