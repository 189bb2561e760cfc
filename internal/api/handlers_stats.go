package api

import (
	"net/http"

	"github.com/dgallion1/itemsplit/internal/segment"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"queue_depth": s.orchestrator.QueueDepth(),
		"stats":       s.orchestrator.Stats(),
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	c := s.catalog
	if c == nil {
		c = segment.DefaultCatalog()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"threshold":         s.cfg.ScoreThreshold,
		"max_header_length": s.cfg.MaxHeaderLength,
		"items":             c.Entries(),
	})
}
