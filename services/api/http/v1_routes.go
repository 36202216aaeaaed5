package http

// registerV1Routes mounts the stress endpoints under /api/v1/stress.
func (s *Server) registerV1Routes() {
	v1 := s.engine.Group("/api/v1")
	v1.Use(apiVersionMiddleware()) // Add X-API-Version: v1 header
	if auth := s.authMiddleware(); auth != nil {
		v1.Use(auth)
	}

	st := v1.Group("/stress")
	{
		st.POST("/evaluate", s.handleV1Evaluate)
		st.GET("/stages", s.handleV1Stages)
		st.GET("/zones", s.handleV1ListZones)
		st.GET("/zones/:zone_id/results", s.handleV1ZoneResults)
		st.GET("/zones/:zone_id/latest", s.handleV1ZoneLatest)
		st.GET("/zones/:zone_id/summary", s.handleV1ZoneSummary)
	}
}
