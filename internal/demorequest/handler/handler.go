package handler

import (
	"net/http"

	"github.com/desuite/desuite-web/backend/internal/demorequest"
	"github.com/desuite/desuite-web/backend/internal/demorequest/service"
	"github.com/desuite/desuite-web/backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

const (
	submitFailed = "Failed to submit demo request. Please try again."
	listFailed   = "Failed to fetch demo requests."
)

// Options controls how the demo request routes are mounted.
type Options struct {
	// SubmitLimiter runs before POST when set.
	SubmitLimiter gin.HandlerFunc
	// ListGuard protects GET. Without a guard the list is mounted only when AllowAnonymousList is true.
	ListGuard          gin.HandlerFunc
	AllowAnonymousList bool
}

// RegisterDemoRequestRoutes mounts the demo request API on r.
func RegisterDemoRequestRoutes(r gin.IRouter, svc service.Service, opts Options) {
	h := &demoHandler{svc: svc}

	post := []gin.HandlerFunc{}
	if opts.SubmitLimiter != nil {
		post = append(post, opts.SubmitLimiter)
	}
	r.POST("/api/demo-requests", append(post, h.submit)...)

	switch {
	case opts.ListGuard != nil:
		r.GET("/api/demo-requests", opts.ListGuard, h.list)
	case opts.AllowAnonymousList:
		logger.Warnf("GET /api/demo-requests is mounted without authentication")
		r.GET("/api/demo-requests", h.list)
	default:
		logger.Warnf("GET /api/demo-requests not mounted: no token verifier configured")
	}

	r.GET("/api/demo-requests/schema", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"fields": demorequest.Describe()})
	})
}

type demoHandler struct {
	svc service.Service
}

func (h *demoHandler) submit(c *gin.Context) {
	var in demorequest.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": demorequest.DecodeError(err).Error()})
		return
	}

	d, err := h.svc.Submit(c.Request.Context(), in)
	if err != nil {
		if service.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		logger.Errorw("Error creating demo request", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": submitFailed})
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *demoHandler) list(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		logger.Errorw("Error fetching demo requests", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": listFailed})
		return
	}
	if list == nil {
		list = []*demorequest.DemoRequest{}
	}
	c.JSON(http.StatusOK, list)
}
