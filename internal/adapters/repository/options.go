package repository

import gormlogger "gorm.io/gorm/logger"

// Option applies a configuration option to the SQLStore.
type Option func(*SQLStore)

// WithGormLogLevel sets the verbosity of gorm's own SQL logger.
func WithGormLogLevel(level gormlogger.LogLevel) Option {
	return func(s *SQLStore) {
		s.gormLogLevel = level
	}
}

// WithAutoMigrate toggles schema migration on open. Enabled by default.
func WithAutoMigrate(enabled bool) Option {
	return func(s *SQLStore) {
		s.autoMigrate = enabled
	}
}
