package school

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrStudentNotFound     = errors.New("student not found")
	ErrCourseNotFound      = errors.New("course not found")
	ErrStudentEmailExists  = errors.New("a student with this email already exists")
)

type (
	StudentRepository interface {
		CreateStudent(ctx context.Context, st Student) (Student, error)
		QueryAllStudents(ctx context.Context) ([]Student, error)
		GetStudentByID(ctx context.Context, id int) (Student, error)
		UpdateStudent(ctx context.Context, st Student) (Student, error)
		DeleteStudentByID(ctx context.Context, id int) error
	}

	CourseRepository interface {
		CreateCourse(ctx context.Context, c Course) (Course, error)
		QueryAllCourses(ctx context.Context) ([]Course, error)
		GetCourseByID(ctx context.Context, id int) (Course, error)
		UpdateCourse(ctx context.Context, c Course) (Course, error)
		DeleteCourseByID(ctx context.Context, id int) error
	}

	ClassSessionRepository interface {
		CreateClassSession(ctx context.Context, cs ClassSession) (ClassSession, error)
		QueryAllClassSessions(ctx context.Context) ([]ClassSession, error)
	}

	EnrollmentRepository interface {
		CreateEnrollment(ctx context.Context, e Enrollment) (Enrollment, error)
		QueryAllEnrollments(ctx context.Context) ([]Enrollment, error)
	}

	PaymentRepository interface {
		CreatePayment(ctx context.Context, p Payment) (Payment, error)
		QueryAllPayments(ctx context.Context) ([]Payment, error)
	}

	AttendanceRepository interface {
		CreateAttendance(ctx context.Context, a Attendance) (Attendance, error)
		QueryAllAttendance(ctx context.Context) ([]Attendance, error)
	}

	GradeRepository interface {
		CreateGrade(ctx context.Context, g Grade) (Grade, error)
		QueryAllGrades(ctx context.Context) ([]Grade, error)
	}

	// Repository is the opaque relational store for the school domain.
	Repository interface {
		StudentRepository
		CourseRepository
		ClassSessionRepository
		EnrollmentRepository
		PaymentRepository
		AttendanceRepository
		GradeRepository
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Students

func (svc *Service) CreateStudent(ctx context.Context, ns NewStudent) (Student, error) {
	status := ns.Status
	if status == "" {
		status = StudentActive
	}
	st := Student{
		Name:           ns.Name,
		Email:          ns.Email,
		Phone:          ns.Phone,
		ParentPhone:    ns.ParentPhone,
		Address:        ns.Address,
		Status:         status,
		EnrollmentDate: time.Now().UTC(),
		Notes:          ns.Notes,
	}
	if ns.BirthDate != "" {
		bd, err := time.Parse(dateLayout, ns.BirthDate)
		if err != nil {
			return Student{}, err
		}
		st.BirthDate = &bd
	}
	return svc.repo.CreateStudent(ctx, st)
}

func (svc *Service) QueryAllStudents(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAllStudents(ctx)
}

func (svc *Service) GetStudentByID(ctx context.Context, id int) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *Service) UpdateStudent(ctx context.Context, id int, us UpdateStudent) (Student, error) {
	st, err := svc.repo.GetStudentByID(ctx, id)
	if err != nil {
		return Student{}, err
	}
	if us.Name != "" {
		st.Name = us.Name
	}
	if us.Email != "" {
		st.Email = us.Email
	}
	if us.Phone != "" {
		st.Phone = us.Phone
	}
	if us.ParentPhone != "" {
		st.ParentPhone = us.ParentPhone
	}
	if us.Address != "" {
		st.Address = us.Address
	}
	if us.Status != "" {
		st.Status = us.Status
	}
	if us.Notes != "" {
		st.Notes = us.Notes
	}
	if us.BirthDate != "" {
		bd, err := time.Parse(dateLayout, us.BirthDate)
		if err != nil {
			return Student{}, err
		}
		st.BirthDate = &bd
	}
	return svc.repo.UpdateStudent(ctx, st)
}

func (svc *Service) DeleteStudent(ctx context.Context, id int) error {
	return svc.repo.DeleteStudentByID(ctx, id)
}

// Courses

func (svc *Service) CreateCourse(ctx context.Context, nc NewCourse) (Course, error) {
	status := nc.Status
	if status == "" {
		status = CourseActive
	}
	maxStudents := nc.MaxStudents
	if maxStudents == 0 {
		maxStudents = 20
	}
	c := Course{
		Name:        nc.Name,
		Description: nc.Description,
		Duration:    nc.Duration,
		Price:       nc.Price,
		MaxStudents: maxStudents,
		TeacherID:   nc.TeacherID,
		Status:      status,
		CreatedAt:   time.Now().UTC(),
	}
	return svc.repo.CreateCourse(ctx, c)
}

func (svc *Service) QueryAllCourses(ctx context.Context) ([]Course, error) {
	return svc.repo.QueryAllCourses(ctx)
}

func (svc *Service) GetCourseByID(ctx context.Context, id int) (Course, error) {
	return svc.repo.GetCourseByID(ctx, id)
}

func (svc *Service) UpdateCourse(ctx context.Context, id int, uc UpdateCourse) (Course, error) {
	c, err := svc.repo.GetCourseByID(ctx, id)
	if err != nil {
		return Course{}, err
	}
	if uc.Name != "" {
		c.Name = uc.Name
	}
	if uc.Description != "" {
		c.Description = uc.Description
	}
	if uc.Duration != "" {
		c.Duration = uc.Duration
	}
	if uc.Price != nil {
		c.Price = *uc.Price
	}
	if uc.MaxStudents != nil {
		c.MaxStudents = *uc.MaxStudents
	}
	if uc.TeacherID != nil {
		c.TeacherID = *uc.TeacherID
	}
	if uc.Status != "" {
		c.Status = uc.Status
	}
	return svc.repo.UpdateCourse(ctx, c)
}

func (svc *Service) DeleteCourse(ctx context.Context, id int) error {
	return svc.repo.DeleteCourseByID(ctx, id)
}

// Class sessions

func (svc *Service) CreateClassSession(ctx context.Context, nc NewClassSession) (ClassSession, error) {
	schedule, err := time.Parse(time.RFC3339, nc.Schedule)
	if err != nil {
		// the original accepts bare ISO timestamps without a zone
		schedule, err = time.Parse("2006-01-02T15:04:05", nc.Schedule)
		if err != nil {
			return ClassSession{}, err
		}
	}
	status := nc.Status
	if status == "" {
		status = ClassScheduled
	}
	duration := nc.Duration
	if duration == 0 {
		duration = 60
	}
	cs := ClassSession{
		CourseID:    nc.CourseID,
		TeacherID:   nc.TeacherID,
		Title:       nc.Title,
		Description: nc.Description,
		Schedule:    schedule,
		Duration:    duration,
		Room:        nc.Room,
		Status:      status,
		CreatedAt:   time.Now().UTC(),
	}
	return svc.repo.CreateClassSession(ctx, cs)
}

func (svc *Service) QueryAllClassSessions(ctx context.Context) ([]ClassSession, error) {
	return svc.repo.QueryAllClassSessions(ctx)
}

// Enrollments

func (svc *Service) CreateEnrollment(ctx context.Context, ne NewEnrollment) (Enrollment, error) {
	status := ne.Status
	if status == "" {
		status = EnrollmentActive
	}
	e := Enrollment{
		StudentID:      ne.StudentID,
		CourseID:       ne.CourseID,
		EnrollmentDate: time.Now().UTC(),
		Status:         status,
		Notes:          ne.Notes,
	}
	return svc.repo.CreateEnrollment(ctx, e)
}

func (svc *Service) QueryAllEnrollments(ctx context.Context) ([]Enrollment, error) {
	return svc.repo.QueryAllEnrollments(ctx)
}

// Payments

func (svc *Service) CreatePayment(ctx context.Context, np NewPayment) (Payment, error) {
	status := np.Status
	if status == "" {
		status = PaymentPending
	}
	reference := np.Reference
	if reference == "" {
		reference = uuid.NewString()
	}
	p := Payment{
		StudentID:   np.StudentID,
		Amount:      np.Amount,
		Type:        np.Type,
		Description: np.Description,
		Date:        time.Now().UTC(),
		Status:      status,
		Method:      np.Method,
		Reference:   reference,
	}
	return svc.repo.CreatePayment(ctx, p)
}

func (svc *Service) QueryAllPayments(ctx context.Context) ([]Payment, error) {
	return svc.repo.QueryAllPayments(ctx)
}

// Attendance

func (svc *Service) CreateAttendance(ctx context.Context, na NewAttendance) (Attendance, error) {
	date, err := time.Parse(dateLayout, na.Date)
	if err != nil {
		return Attendance{}, err
	}
	status := na.Status
	if status == "" {
		status = AttendancePresent
	}
	a := Attendance{
		StudentID: na.StudentID,
		ClassID:   na.ClassID,
		Date:      date,
		Status:    status,
		Notes:     na.Notes,
	}
	return svc.repo.CreateAttendance(ctx, a)
}

func (svc *Service) QueryAllAttendance(ctx context.Context) ([]Attendance, error) {
	return svc.repo.QueryAllAttendance(ctx)
}

// Grades

func (svc *Service) CreateGrade(ctx context.Context, ng NewGrade) (Grade, error) {
	typ := ng.Type
	if typ == "" {
		typ = "evaluacion"
	}
	weight := ng.Weight
	if weight == 0 {
		weight = 1.0
	}
	g := Grade{
		StudentID:   ng.StudentID,
		CourseID:    ng.CourseID,
		Grade:       ng.Grade,
		Type:        typ,
		Description: ng.Description,
		Date:        time.Now().UTC(),
		Weight:      weight,
	}
	return svc.repo.CreateGrade(ctx, g)
}

func (svc *Service) QueryAllGrades(ctx context.Context) ([]Grade, error) {
	return svc.repo.QueryAllGrades(ctx)
}
