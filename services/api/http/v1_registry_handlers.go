package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func listResponse[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, gin.H{
		"data": items,
		"meta": gin.H{"count": len(items)},
	})
}

// GET /api/v1/registry/water-zones
func (s *Server) handleV1WaterZones(c *gin.Context) { listResponse(c, s.deps.Registry.WaterZones()) }

// GET /api/v1/registry/footfall-zones
func (s *Server) handleV1FootfallZones(c *gin.Context) {
	listResponse(c, s.deps.Registry.FootfallZones())
}

// GET /api/v1/registry/parking-lots
func (s *Server) handleV1ParkingLots(c *gin.Context) { listResponse(c, s.deps.Registry.ParkingLots()) }

// GET /api/v1/registry/waste-areas
func (s *Server) handleV1WasteAreas(c *gin.Context) { listResponse(c, s.deps.Registry.WasteAreas()) }

// GET /api/v1/registry/plants
func (s *Server) handleV1Plants(c *gin.Context) { listResponse(c, s.deps.Registry.Plants()) }

// GET /api/v1/registry/space-types
func (s *Server) handleV1SpaceTypes(c *gin.Context) { listResponse(c, s.deps.Registry.SpaceTypes()) }
