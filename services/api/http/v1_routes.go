package http

// registerV1Routes sets up the v1 API structure
// Groups: /api/v1/analyze, /api/v1/dashboard, /api/v1/registry, /api/v1/chat
func (s *Server) registerV1Routes() {
	v1 := s.engine.Group("/api/v1")
	v1.Use(apiVersionMiddleware()) // Add X-API-Version: v1 header

	v1.GET("/domains", s.handleV1ListDomains)

	// Analyzer endpoints - one report per domain and zone
	analyze := v1.Group("/analyze")
	{
		analyze.GET("/:domain", s.handleV1Analyze)
		analyze.GET("/:domain/:zone", s.handleV1Analyze)
		analyze.POST("/:domain", s.handleV1Analyze)
		analyze.POST("/:domain/:zone", s.handleV1Analyze)
	}

	dashboard := v1.Group("/dashboard")
	{
		dashboard.GET("/overview", s.handleV1Overview)
	}

	// Registry endpoints - static campus layout for the map
	reg := v1.Group("/registry")
	{
		reg.GET("/water-zones", s.handleV1WaterZones)
		reg.GET("/footfall-zones", s.handleV1FootfallZones)
		reg.GET("/parking-lots", s.handleV1ParkingLots)
		reg.GET("/waste-areas", s.handleV1WasteAreas)
		reg.GET("/plants", s.handleV1Plants)
		reg.GET("/space-types", s.handleV1SpaceTypes)
	}

	v1.POST("/chat", s.handleV1Chat)
}
