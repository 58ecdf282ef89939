package repository

import "time"

// Person represents a people row.
type Person struct {
	ID        string
	FirstName string
	LastName  string
	Age       int
	Email     string
	CreatedAt time.Time
}
