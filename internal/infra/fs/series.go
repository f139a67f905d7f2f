package fs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

var ErrNoSeriesData = errors.New("no series data")

// SeriesEntry is one record of a series file
type SeriesEntry struct {
	Timestamp string  `json:"timestamp,omitempty"` // RFC3339
	Date      string  `json:"date,omitempty"`      // YYYY-MM-DD, used when timestamp is empty
	Value     float64 `json:"value"`
}

// SeriesFile is the {"entries": [...]} layout; a bare JSON array is accepted too
type SeriesFile struct {
	Entries []SeriesEntry `json:"entries"`
}

// SeriesPoint is a parsed, chartable record
type SeriesPoint struct {
	Time  time.Time
	Value float64
}

// LoadSeries reads a series file and returns its points ordered by time.
// Entries whose time cannot be parsed are skipped.
func LoadSeries(path string) ([]SeriesPoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read series file: %w", err)
	}

	var entries []SeriesEntry
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("failed to unmarshal series file: %w", err)
		}
	} else {
		var file SeriesFile
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to unmarshal series file: %w", err)
		}
		entries = file.Entries
	}

	points := make([]SeriesPoint, 0, len(entries))
	for _, e := range entries {
		ts, err := e.parseTime()
		if err != nil {
			continue
		}
		points = append(points, SeriesPoint{Time: ts, Value: e.Value})
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSeriesData, path)
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Time.Before(points[j].Time)
	})
	return points, nil
}

func (e SeriesEntry) parseTime() (time.Time, error) {
	if ts := strings.TrimSpace(e.Timestamp); ts != "" {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			return t, nil
		}
	}
	return time.Parse("2006-01-02", strings.TrimSpace(e.Date))
}
