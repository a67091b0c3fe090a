package smoke

import "time"

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL     string        // Base URL of the service
	Students    int           // Number of students to submit
	Workers     int           // Number of concurrent submitters
	Timeout     time.Duration // Per-request timeout
	CurvePoints int           // Expected points per regression curve
	Verbose     bool          // Enable debug logging
}

// Student is one generated prediction input.
type Student struct {
	Name       string
	StudyHours float64
}

// Result pairs a submitted student with the score the service returned.
type Result struct {
	Student Student
	Score   float64
}

// Stats holds run statistics.
type Stats struct {
	Generated int
	Succeeded int
	Failed    int
	StartTime time.Time
	Duration  time.Duration
}
