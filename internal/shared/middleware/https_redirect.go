package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// HTTPSRedirect sends plain HTTP requests to the https:// URL with 308,
// keeping method and body. X-Forwarded-Proto from a terminating proxy is honoured.
// httpsPort may be empty to keep the default port.
func HTTPSRedirect(httpsPort string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isHTTPS(c.Request) {
			c.Next()
			return
		}

		host := c.Request.Host
		if httpsPort != "" {
			if h, _, err := net.SplitHostPort(host); err == nil {
				host = h
			}
			if httpsPort != "443" {
				host = net.JoinHostPort(host, httpsPort)
			}
		}

		target := "https://" + host + c.Request.URL.RequestURI()
		c.Redirect(http.StatusPermanentRedirect, target)
		c.Abort()
	}
}

func isHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	proto := r.Header.Get("X-Forwarded-Proto")
	if i := strings.IndexByte(proto, ','); i >= 0 {
		proto = proto[:i]
	}
	return strings.EqualFold(strings.TrimSpace(proto), "https")
}
