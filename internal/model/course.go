package model

import "time"

// Course is a course owned by exactly one User (UserID).
//
// EstimatedTime and MaterialsNeeded are optional, so they are pointers:
// nil means NULL in the database and null in JSON.
//
// Owner is populated by repository reads that join the users table. It is
// nil on freshly created courses.
type Course struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	EstimatedTime   *string   `json:"estimatedTime"`
	MaterialsNeeded *string   `json:"materialsNeeded"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
	Owner           *User     `json:"User,omitempty"`
}

// OwnedBy reports whether the user with the given ID may mutate this course.
func (c *Course) OwnedBy(userID int64) bool {
	return c.UserID == userID
}
