package dummydb

import (
	"context"
	"sort"

	"github.com/lvillarreal/educrm/core/school"
)

type schoolRepository struct {
	db *DB
}

var _ school.Repository = (*schoolRepository)(nil)

func NewSchoolRepository(db *DB) school.Repository {
	return &schoolRepository{db: db}
}

// Students

func (repo *schoolRepository) CreateStudent(_ context.Context, st school.Student) (school.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, existing := range repo.db.students {
		if existing.Email == st.Email {
			return school.Student{}, school.ErrStudentEmailExists
		}
	}
	st.ID = repo.db.nextPK()
	repo.db.students[st.ID] = &st
	return st, nil
}

func (repo *schoolRepository) QueryAllStudents(_ context.Context) ([]school.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	students := make([]school.Student, 0, len(repo.db.students))
	for _, st := range repo.db.students {
		students = append(students, *st)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students, nil
}

func (repo *schoolRepository) GetStudentByID(_ context.Context, id int) (school.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if st, ok := repo.db.students[id]; ok {
		return *st, nil
	}
	return school.Student{}, school.ErrStudentNotFound
}

func (repo *schoolRepository) UpdateStudent(_ context.Context, st school.Student) (school.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.students[st.ID]; !ok {
		return school.Student{}, school.ErrStudentNotFound
	}
	repo.db.students[st.ID] = &st
	return st, nil
}

func (repo *schoolRepository) DeleteStudentByID(_ context.Context, id int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.students[id]; !ok {
		return school.ErrStudentNotFound
	}
	delete(repo.db.students, id)
	return nil
}

// Courses

func (repo *schoolRepository) CreateCourse(_ context.Context, c school.Course) (school.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	c.ID = repo.db.nextPK()
	repo.db.courses[c.ID] = &c
	return c, nil
}

func (repo *schoolRepository) QueryAllCourses(_ context.Context) ([]school.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	courses := make([]school.Course, 0, len(repo.db.courses))
	for _, c := range repo.db.courses {
		courses = append(courses, *c)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses, nil
}

func (repo *schoolRepository) GetCourseByID(_ context.Context, id int) (school.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if c, ok := repo.db.courses[id]; ok {
		return *c, nil
	}
	return school.Course{}, school.ErrCourseNotFound
}

func (repo *schoolRepository) UpdateCourse(_ context.Context, c school.Course) (school.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.courses[c.ID]; !ok {
		return school.Course{}, school.ErrCourseNotFound
	}
	repo.db.courses[c.ID] = &c
	return c, nil
}

func (repo *schoolRepository) DeleteCourseByID(_ context.Context, id int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.courses[id]; !ok {
		return school.ErrCourseNotFound
	}
	delete(repo.db.courses, id)
	return nil
}

// Class sessions

func (repo *schoolRepository) CreateClassSession(_ context.Context, cs school.ClassSession) (school.ClassSession, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	cs.ID = repo.db.nextPK()
	repo.db.classes[cs.ID] = &cs
	return cs, nil
}

func (repo *schoolRepository) QueryAllClassSessions(_ context.Context) ([]school.ClassSession, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	classes := make([]school.ClassSession, 0, len(repo.db.classes))
	for _, cs := range repo.db.classes {
		classes = append(classes, *cs)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].ID < classes[j].ID })
	return classes, nil
}

// Enrollments

func (repo *schoolRepository) CreateEnrollment(_ context.Context, e school.Enrollment) (school.Enrollment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	e.ID = repo.db.nextPK()
	repo.db.enrollments[e.ID] = &e
	return e, nil
}

func (repo *schoolRepository) QueryAllEnrollments(_ context.Context) ([]school.Enrollment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	enrollments := make([]school.Enrollment, 0, len(repo.db.enrollments))
	for _, e := range repo.db.enrollments {
		enrollments = append(enrollments, *e)
	}
	sort.Slice(enrollments, func(i, j int) bool { return enrollments[i].ID < enrollments[j].ID })
	return enrollments, nil
}

// Payments

func (repo *schoolRepository) CreatePayment(_ context.Context, p school.Payment) (school.Payment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	p.ID = repo.db.nextPK()
	repo.db.payments[p.ID] = &p
	return p, nil
}

func (repo *schoolRepository) QueryAllPayments(_ context.Context) ([]school.Payment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	payments := make([]school.Payment, 0, len(repo.db.payments))
	for _, p := range repo.db.payments {
		payments = append(payments, *p)
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].ID < payments[j].ID })
	return payments, nil
}

// Attendance

func (repo *schoolRepository) CreateAttendance(_ context.Context, a school.Attendance) (school.Attendance, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	a.ID = repo.db.nextPK()
	repo.db.attendance[a.ID] = &a
	return a, nil
}

func (repo *schoolRepository) QueryAllAttendance(_ context.Context) ([]school.Attendance, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	attendance := make([]school.Attendance, 0, len(repo.db.attendance))
	for _, a := range repo.db.attendance {
		attendance = append(attendance, *a)
	}
	sort.Slice(attendance, func(i, j int) bool { return attendance[i].ID < attendance[j].ID })
	return attendance, nil
}

// Grades

func (repo *schoolRepository) CreateGrade(_ context.Context, g school.Grade) (school.Grade, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	g.ID = repo.db.nextPK()
	repo.db.grades[g.ID] = &g
	return g, nil
}

func (repo *schoolRepository) QueryAllGrades(_ context.Context) ([]school.Grade, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	grades := make([]school.Grade, 0, len(repo.db.grades))
	for _, g := range repo.db.grades {
		grades = append(grades, *g)
	}
	sort.Slice(grades, func(i, j int) bool { return grades[i].ID < grades[j].ID })
	return grades, nil
}
