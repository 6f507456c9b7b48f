package middleware

import (
	"portfolio-contact-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
)

// Content security policies. JSON endpoints load nothing; the swagger UI
// page needs its own bundle plus the inline bootstrap script.
const (
	APIContentSecurityPolicy  = "default-src 'none'; frame-ancestors 'none'"
	DocsContentSecurityPolicy = "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; frame-ancestors 'none'"
)

// SecurityHeadersMiddleware adds baseline security headers with the given
// CSP. HSTS is only sent in production so local http keeps working.
func SecurityHeadersMiddleware(isProduction bool, contentSecurityPolicy string) gin.HandlerFunc {
	secureMiddleware := secure.New(secure.Options{
		STSSeconds:            63072000, // 2 years
		STSIncludeSubdomains:  true,
		STSPreload:            true,
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		PermissionsPolicy:     "camera=(), microphone=(), geolocation=(), payment=()",
		ContentSecurityPolicy: contentSecurityPolicy,
		IsDevelopment:         !isProduction,
	})

	return func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			logger.Log.Warn("Security middleware rejected request", "error", err)
			c.Abort()
			return
		}
		c.Next()
	}
}
