package domain

import "time"

type CourseProgress struct {
	ID               int       `json:"id" db:"id"`
	UserID           int       `json:"user_id" db:"user_id"`
	CourseName       string    `json:"course_name" db:"course_name"`
	TotalModules     int       `json:"total_modules" db:"total_modules"`
	CompletedModules []string  `json:"completed_modules" db:"completed_modules"`
	ProgressPercent  float64   `json:"progress_percent" db:"progress_percent"`
	IsCompleted      bool      `json:"is_completed" db:"is_completed"`
	Started          bool      `json:"started" db:"started"`
	Ended            bool      `json:"ended" db:"ended"`
	LastUpdated      time.Time `json:"last_updated" db:"last_updated"`
}

// HasModule reports whether the module is already recorded as completed.
func (c *CourseProgress) HasModule(moduleID string) bool {
	for _, id := range c.CompletedModules {
		if id == moduleID {
			return true
		}
	}
	return false
}

// AddModule records a completed module and recomputes progress. It is a
// no-op when the module was already completed.
func (c *CourseProgress) AddModule(moduleID string) bool {
	if c.HasModule(moduleID) {
		return false
	}
	c.CompletedModules = append(c.CompletedModules, moduleID)
	c.Recalculate()
	return true
}

// Recalculate refreshes percent and completion flags from the module list.
func (c *CourseProgress) Recalculate() {
	if c.TotalModules > 0 {
		done := len(c.CompletedModules)
		c.ProgressPercent = float64(done) / float64(c.TotalModules) * 100
		c.IsCompleted = done >= c.TotalModules
	} else {
		c.ProgressPercent = 0
		c.IsCompleted = false
	}
	if c.IsCompleted {
		c.Ended = true
	}
	c.LastUpdated = time.Now()
}
