package handlers

import (
	"fmt"

	"github.com/desuite/desuite-web/backend/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// NewEngine builds the gin engine with access logging and recovery. Client IPs come from
// X-Forwarded-For only when the peer is one of trustedProxies; an empty list trusts none.
func NewEngine(trustedProxies []string) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/health", "/ready", "/metrics"), middleware.Recovery())
	return r, nil
}
