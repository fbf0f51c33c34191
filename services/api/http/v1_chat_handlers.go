package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/02loveslollipop/campus-pulse/services/api/analysis"
)

type chatBody struct {
	Message string `json:"message"`
}

// handleV1Chat answers a free-text question
// POST /api/v1/chat {"message": "Where are the clog points?"}
func (s *Server) handleV1Chat(c *gin.Context) {
	var body chatBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, analysis.Invalid("body", nil, err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	reply, err := s.deps.Assistant.Reply(ctx, body.Message)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": reply,
		"meta": gin.H{
			"intent":     reply.Intent,
			"responder":  reply.Responder,
			"request_id": c.GetString(requestIDKey),
		},
	})
}
