package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/02loveslollipop/campus-pulse/services/api/analysis"
	"github.com/02loveslollipop/campus-pulse/services/api/campus"
)

// analyzeBody is the optional POST payload. Option values may be JSON
// strings, numbers or booleans.
type analyzeBody struct {
	Options  map[string]any     `json:"options"`
	Readings map[string]float64 `json:"readings"`
}

// handleV1ListDomains lists analyzers and their default zones
// GET /api/v1/domains
func (s *Server) handleV1ListDomains(c *gin.Context) {
	domains := make([]gin.H, 0, len(campus.Domains))
	for _, d := range campus.Domains {
		domains = append(domains, gin.H{"domain": d, "default_zone": d.DefaultZone()})
	}
	c.JSON(http.StatusOK, gin.H{
		"data": domains,
		"meta": gin.H{"count": len(domains)},
	})
}

// handleV1Analyze runs one analyzer
// GET  /api/v1/analyze/:domain/:zone?hours=12
// POST /api/v1/analyze/:domain/:zone {"options": {...}, "readings": {...}}
func (s *Server) handleV1Analyze(c *gin.Context) {
	d, err := campus.ParseDomain(c.Param("domain"))
	if err != nil {
		respondError(c, err)
		return
	}

	req := campus.Request{Domain: d, Zone: c.Param("zone"), Options: map[string]string{}}
	for k, v := range c.Request.URL.Query() {
		if len(v) > 0 {
			req.Options[k] = v[0]
		}
	}

	if c.Request.Method == http.MethodPost {
		var body analyzeBody
		if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
			respondError(c, analysis.Invalid("body", nil, err.Error()))
			return
		}
		for k, v := range body.Options {
			req.Options[k] = fmt.Sprint(v)
		}
		req.Readings = body.Readings
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	res, err := s.deps.Campus.Analyze(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": res.Report,
		"meta": gin.H{
			"domain":     res.Domain,
			"zone":       res.Zone,
			"headline":   res.Headline,
			"request_id": c.GetString(requestIDKey),
		},
	})
}

// handleV1Overview runs every analyzer on its default zone
// GET /api/v1/dashboard/overview
func (s *Server) handleV1Overview(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 20*time.Second)
	defer cancel()

	ov, err := s.deps.Campus.Overview(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": ov.Tiles,
		"meta": gin.H{
			"count":        len(ov.Tiles),
			"generated_at": ov.GeneratedAt,
		},
	})
}
