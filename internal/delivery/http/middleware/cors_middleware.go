package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// devOrigins are only accepted outside release mode
var devOrigins = map[string]bool{
	"http://localhost:3000": true,
	"http://127.0.0.1:3000": true,
	"http://localhost:8080": true,
}

// CORSMiddleware allows the portfolio site (and localhost while developing)
// to call the API. Disallowed origins get no CORS headers and the browser
// blocks the request.
func CORSMiddleware(allowedOrigins []string, isProduction bool) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			if allowed[origin] {
				return true
			}
			return !isProduction && devOrigins[origin]
		},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Requested-With", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        24 * time.Hour,
	})
}
