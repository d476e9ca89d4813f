// Package dummydb provides an in-memory implementation of the repositories,
// used in tests and for local runs without a database.
package dummydb

import (
	"sync"

	"github.com/lvillarreal/educrm/core/school"
	"github.com/lvillarreal/educrm/core/user"
)

type DB struct {
	sync.RWMutex

	pkCount int

	users       map[int]*user.User
	students    map[int]*school.Student
	courses     map[int]*school.Course
	classes     map[int]*school.ClassSession
	enrollments map[int]*school.Enrollment
	payments    map[int]*school.Payment
	attendance  map[int]*school.Attendance
	grades      map[int]*school.Grade
}

func NewDB() *DB {
	return &DB{
		users:       make(map[int]*user.User),
		students:    make(map[int]*school.Student),
		courses:     make(map[int]*school.Course),
		classes:     make(map[int]*school.ClassSession),
		enrollments: make(map[int]*school.Enrollment),
		payments:    make(map[int]*school.Payment),
		attendance:  make(map[int]*school.Attendance),
		grades:      make(map[int]*school.Grade),
	}
}

// nextPK must be called with the write lock held.
func (db *DB) nextPK() int {
	db.pkCount++
	return db.pkCount
}
