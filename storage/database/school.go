package database

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/lvillarreal/educrm/core/school"
)

type schoolRepository struct {
	db *sqlx.DB
}

var _ school.Repository = (*schoolRepository)(nil)

func NewSchoolRepository(db *sqlx.DB) school.Repository {
	return &schoolRepository{db: db}
}

// Students

func (repo *schoolRepository) CreateStudent(ctx context.Context, st school.Student) (school.Student, error) {
	err := repo.db.QueryRowxContext(
		ctx,
		`INSERT INTO students (name, email, phone, parent_phone, address, birth_date, status, enrollment_date, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		st.Name, st.Email, st.Phone, st.ParentPhone, st.Address, st.BirthDate, st.Status, st.EnrollmentDate, st.Notes,
	).Scan(&st.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return school.Student{}, school.ErrStudentEmailExists
		}
		return school.Student{}, errors.Wrap(err, "creating student")
	}
	return st, nil
}

func (repo *schoolRepository) QueryAllStudents(ctx context.Context) ([]school.Student, error) {
	students := make([]school.Student, 0)
	err := repo.db.SelectContext(ctx, &students, `SELECT * FROM students ORDER BY id`)
	return students, errors.Wrap(err, "querying students")
}

func (repo *schoolRepository) GetStudentByID(ctx context.Context, id int) (school.Student, error) {
	var st school.Student
	err := repo.db.GetContext(ctx, &st, `SELECT * FROM students WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return school.Student{}, school.ErrStudentNotFound
		}
		return school.Student{}, errors.Wrap(err, "getting student by id")
	}
	return st, nil
}

func (repo *schoolRepository) UpdateStudent(ctx context.Context, st school.Student) (school.Student, error) {
	res, err := repo.db.ExecContext(
		ctx,
		`UPDATE students
		 SET name = $2, email = $3, phone = $4, parent_phone = $5, address = $6,
		     birth_date = $7, status = $8, notes = $9
		 WHERE id = $1`,
		st.ID, st.Name, st.Email, st.Phone, st.ParentPhone, st.Address, st.BirthDate, st.Status, st.Notes,
	)
	if err != nil {
		return school.Student{}, errors.Wrap(err, "updating student")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return school.Student{}, school.ErrStudentNotFound
	}
	return st, nil
}

func (repo *schoolRepository) DeleteStudentByID(ctx context.Context, id int) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting student")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return school.ErrStudentNotFound
	}
	return nil
}

// Courses

func (repo *schoolRepository) CreateCourse(ctx context.Context, c school.Course) (school.Course, error) {
	err := repo.db.QueryRowxContext(
		ctx,
		`INSERT INTO courses (name, description, duration, price, max_students, teacher_id, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		c.Name, c.Description, c.Duration, c.Price, c.MaxStudents, c.TeacherID, c.Status, c.CreatedAt,
	).Scan(&c.ID)
	if err != nil {
		return school.Course{}, errors.Wrap(err, "creating course")
	}
	return c, nil
}

func (repo *schoolRepository) QueryAllCourses(ctx context.Context) ([]school.Course, error) {
	courses := make([]school.Course, 0)
	err := repo.db.SelectContext(ctx, &courses, `SELECT * FROM courses ORDER BY id`)
	return courses, errors.Wrap(err, "querying courses")
}

func (repo *schoolRepository) GetCourseByID(ctx context.Context, id int) (school.Course, error) {
	var c school.Course
	err := repo.db.GetContext(ctx, &c, `SELECT * FROM courses WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return school.Course{}, school.ErrCourseNotFound
		}
		return school.Course{}, errors.Wrap(err, "getting course by id")
	}
	return c, nil
}

func (repo *schoolRepository) UpdateCourse(ctx context.Context, c school.Course) (school.Course, error) {
	res, err := repo.db.ExecContext(
		ctx,
		`UPDATE courses
		 SET name = $2, description = $3, duration = $4, price = $5,
		     max_students = $6, teacher_id = $7, status = $8
		 WHERE id = $1`,
		c.ID, c.Name, c.Description, c.Duration, c.Price, c.MaxStudents, c.TeacherID, c.Status,
	)
	if err != nil {
		return school.Course{}, errors.Wrap(err, "updating course")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return school.Course{}, school.ErrCourseNotFound
	}
	return c, nil
}

func (repo *schoolRepository) DeleteCourseByID(ctx context.Context, id int) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting course")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return school.ErrCourseNotFound
	}
	return nil
}

// Class sessions

func (repo *schoolRepository) CreateClassSession(ctx context.Context, cs school.ClassSession) (school.ClassSession, error) {
	err := repo.db.QueryRowxContext(
		ctx,
		`INSERT INTO classes (course_id, teacher_id, title, description, schedule, duration, room, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		cs.CourseID, cs.TeacherID, cs.Title, cs.Description, cs.Schedule, cs.Duration, cs.Room, cs.Status, cs.CreatedAt,
	).Scan(&cs.ID)
	if err != nil {
		return school.ClassSession{}, errors.Wrap(err, "creating class session")
	}
	return cs, nil
}

func (repo *schoolRepository) QueryAllClassSessions(ctx context.Context) ([]school.ClassSession, error) {
	classes := make([]school.ClassSession, 0)
	err := repo.db.SelectContext(ctx, &classes, `SELECT * FROM classes ORDER BY id`)
	return classes, errors.Wrap(err, "querying class sessions")
}

// Enrollments

func (repo *schoolRepository) CreateEnrollment(ctx context.Context, e school.Enrollment) (school.Enrollment, error) {
	err := repo.db.QueryRowxContext(
		ctx,
		`INSERT INTO enrollments (student_id, course_id, enrollment_date, status, final_grade, notes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		e.StudentID, e.CourseID, e.EnrollmentDate, e.Status, e.FinalGrade, e.Notes,
	).Scan(&e.ID)
	if err != nil {
		return school.Enrollment{}, errors.Wrap(err, "creating enrollment")
	}
	return e, nil
}

func (repo *schoolRepository) QueryAllEnrollments(ctx context.Context) ([]school.Enrollment, error) {
	enrollments := make([]school.Enrollment, 0)
	err := repo.db.SelectContext(ctx, &enrollments, `SELECT * FROM enrollments ORDER BY id`)
	return enrollments, errors.Wrap(err, "querying enrollments")
}

// Payments

func (repo *schoolRepository) CreatePayment(ctx context.Context, p school.Payment) (school.Payment, error) {
	err := repo.db.QueryRowxContext(
		ctx,
		`INSERT INTO payments (student_id, amount, type, description, date, status, payment_method, reference)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		p.StudentID, p.Amount, p.Type, p.Description, p.Date, p.Status, p.Method, p.Reference,
	).Scan(&p.ID)
	if err != nil {
		return school.Payment{}, errors.Wrap(err, "creating payment")
	}
	return p, nil
}

func (repo *schoolRepository) QueryAllPayments(ctx context.Context) ([]school.Payment, error) {
	payments := make([]school.Payment, 0)
	err := repo.db.SelectContext(ctx, &payments, `SELECT * FROM payments ORDER BY id`)
	return payments, errors.Wrap(err, "querying payments")
}

// Attendance

func (repo *schoolRepository) CreateAttendance(ctx context.Context, a school.Attendance) (school.Attendance, error) {
	err := repo.db.QueryRowxContext(
		ctx,
		`INSERT INTO attendance (student_id, class_id, date, status, notes)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		a.StudentID, a.ClassID, a.Date, a.Status, a.Notes,
	).Scan(&a.ID)
	if err != nil {
		return school.Attendance{}, errors.Wrap(err, "creating attendance")
	}
	return a, nil
}

func (repo *schoolRepository) QueryAllAttendance(ctx context.Context) ([]school.Attendance, error) {
	attendance := make([]school.Attendance, 0)
	err := repo.db.SelectContext(ctx, &attendance, `SELECT * FROM attendance ORDER BY id`)
	return attendance, errors.Wrap(err, "querying attendance")
}

// Grades

func (repo *schoolRepository) CreateGrade(ctx context.Context, g school.Grade) (school.Grade, error) {
	err := repo.db.QueryRowxContext(
		ctx,
		`INSERT INTO grades (student_id, course_id, grade, type, description, date, weight)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		g.StudentID, g.CourseID, g.Grade, g.Type, g.Description, g.Date, g.Weight,
	).Scan(&g.ID)
	if err != nil {
		return school.Grade{}, errors.Wrap(err, "creating grade")
	}
	return g, nil
}

func (repo *schoolRepository) QueryAllGrades(ctx context.Context) ([]school.Grade, error) {
	grades := make([]school.Grade, 0)
	err := repo.db.SelectContext(ctx, &grades, `SELECT * FROM grades ORDER BY id`)
	return grades, errors.Wrap(err, "querying grades")
}
