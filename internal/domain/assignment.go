package domain

import "time"

// Assignment is one normalized assignment record. DueAt is nil when the
// portal's deadline text could not be parsed; such records are kept and
// categorized Unknown rather than dropped.
type Assignment struct {
	Title       string
	CourseID    string
	CourseName  string
	DueAt       *time.Time
	DeadlineRaw string
	Status      SubmissionStatus

	// Category is computed at aggregation time from DueAt and the run's
	// single now snapshot. It is never persisted.
	Category Category
}

// Identity is the deduplication key for an assignment within a run.
type Identity struct {
	CourseID string
	Title    string
	DueAt    int64 // unix seconds, 0 when DueAt is nil
}

// Identity returns the (course, title, due) tuple that identifies this
// record for deduplication.
func (a Assignment) Identity() Identity {
	id := Identity{CourseID: a.CourseID, Title: a.Title}
	if a.DueAt != nil {
		id.DueAt = a.DueAt.Unix()
	}
	return id
}
