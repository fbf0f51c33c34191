package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/02loveslollipop/campus-pulse/services/api/analysis"
	"github.com/02loveslollipop/campus-pulse/services/api/campus"
	"github.com/02loveslollipop/campus-pulse/services/api/registry"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, analysis.ErrInvalidOption):
		return http.StatusBadRequest
	case errors.Is(err, registry.ErrUnknownZone), errors.Is(err, campus.ErrUnknownDomain):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	body := gin.H{"error": err.Error()}
	var ve *analysis.ValidationError
	if errors.As(err, &ve) {
		body["option"] = ve.Option
	}
	c.JSON(statusFor(err), body)
}
