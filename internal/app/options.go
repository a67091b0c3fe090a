package service

import (
	"github.com/okian/studyscore/internal/adapters/repository"
	"github.com/okian/studyscore/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDatasetPath sets the CSV the models are trained on.
func WithDatasetPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.datasetPath = path
		}
	}
}

// WithDatabasePath sets the SQLite file predictions are stored in.
func WithDatabasePath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.databasePath = path
		}
	}
}

// WithStore injects an already opened store. The service closes it on Stop.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithPolynomialDegree sets the degree of the polynomial model.
func WithPolynomialDegree(degree int) Option {
	return func(s *Service) {
		if degree >= 2 {
			s.polyDegree = degree
		}
	}
}

// WithCurve sets the hours range and resolution of regression curves.
func WithCurve(lo, hi float64, points int) Option {
	return func(s *Service) {
		if hi > lo && points >= 2 {
			s.curveMin, s.curveMax, s.curvePoints = lo, hi, points
		}
	}
}
