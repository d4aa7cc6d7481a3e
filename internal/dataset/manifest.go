package dataset

import "time"

// Manifest records metadata about a loaded dataset.
type Manifest struct {
	Source          string         `json:"source"`
	LoadTime        time.Time      `json:"load_time"`
	LoadDuration    time.Duration  `json:"load_duration_ns"`
	RecordCount     int            `json:"record_count"`
	NameCount       int            `json:"name_count"`
	DuplicateCount  int            `json:"duplicate_count"`
	MissingCells    int            `json:"missing_cells"`
	MissingByColumn map[string]int `json:"missing_by_column,omitempty"`
}
