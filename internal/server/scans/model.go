package scans

import "time"

// Scan is a stored upload together with its generated report.
type Scan struct {
	ID        string
	UserID    string
	ScanType  string
	ImageData string
	AIReport  string
	CreatedAt time.Time
}
