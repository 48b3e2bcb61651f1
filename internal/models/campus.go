package models

import "github.com/lib/pq"

// Campus entities managed through the admin CRUD screens. Ids are numeric,
// assigned by the database.

// Department is a college of the university.
type Department struct {
	ID          int            `json:"id" db:"id"`
	Name        string         `json:"name" db:"name"`
	Dean        string         `json:"dean" db:"dean"`
	Email       string         `json:"email" db:"email"`
	Phone       string         `json:"phone" db:"phone"`
	Description string         `json:"description" db:"description"`
	Programs    pq.StringArray `json:"programs" db:"programs"`
	Image       string         `json:"image" db:"image"`
}

// Course is a degree program offering.
type Course struct {
	ID           int            `json:"id" db:"id"`
	Code         string         `json:"code" db:"code"`
	Name         string         `json:"name" db:"name"`
	Department   string         `json:"department" db:"department"`
	Duration     string         `json:"duration" db:"duration"`
	Units        int            `json:"units" db:"units"`
	Description  string         `json:"description" db:"description"`
	Requirements pq.StringArray `json:"requirements" db:"requirements"`
}

// Scholarship types.
const (
	ScholarshipMerit      = "Merit"
	ScholarshipNeedBased  = "Need-based"
	ScholarshipGovernment = "Government"
)

// Scholarship is a financial aid program.
type Scholarship struct {
	ID          int    `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Provider    string `json:"provider" db:"provider"`
	Deadline    string `json:"deadline" db:"deadline"`
	Type        string `json:"type" db:"type"`
	Description string `json:"description" db:"description"`
}

// Faculty is a teaching staff member.
type Faculty struct {
	ID         int    `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	Position   string `json:"position" db:"position"`
	Department string `json:"department" db:"department"`
	Email      string `json:"email" db:"email"`
}

// MapLocation is a marker on the campus map.
type MapLocation struct {
	ID          int     `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Type        string  `json:"type" db:"type"`
	Lat         float64 `json:"lat" db:"lat"`
	Lng         float64 `json:"lng" db:"lng"`
	Description string  `json:"description" db:"description"`
}
