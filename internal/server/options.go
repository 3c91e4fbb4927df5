package server

import (
	"github.com/dimitrije/eduadmin/internal/metrics"
	"github.com/dimitrije/eduadmin/internal/routes"
	"github.com/rs/zerolog"
)

type Option func(*Server)

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Manager) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

func WithRouteTable(table *routes.Table) Option {
	return func(s *Server) {
		s.table = table
	}
}
