package school

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/lvillarreal/educrm/core"
)

// Status vocabularies, as stored.
const (
	StudentActive    = "activo"
	StudentInactive  = "inactivo"
	StudentGraduated = "graduado"

	CourseActive    = "activo"
	CourseInactive  = "inactivo"
	CourseCompleted = "completado"

	ClassScheduled  = "programada"
	ClassInProgress = "en_curso"
	ClassCompleted  = "completada"
	ClassCancelled  = "cancelada"

	EnrollmentActive    = "activo"
	EnrollmentCompleted = "completado"
	EnrollmentCancelled = "cancelado"

	PaymentPending   = "pendiente"
	PaymentPaid      = "pagado"
	PaymentCancelled = "cancelado"

	AttendancePresent   = "presente"
	AttendanceAbsent    = "ausente"
	AttendanceExcused   = "justificado"
	AttendanceLate      = "tardanza"
)

const dateLayout = "2006-01-02"

type Student struct {
	ID             int        `json:"id" db:"id"`
	Name           string     `json:"name" db:"name"`
	Email          string     `json:"email" db:"email"`
	Phone          string     `json:"phone" db:"phone"`
	ParentPhone    string     `json:"parent_phone" db:"parent_phone"`
	Address        string     `json:"address" db:"address"`
	BirthDate      *time.Time `json:"birth_date" db:"birth_date"`
	Status         string     `json:"status" db:"status"`
	EnrollmentDate time.Time  `json:"enrollment_date" db:"enrollment_date"`
	Notes          string     `json:"notes" db:"notes"`
}

type Course struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Duration    string    `json:"duration" db:"duration"`
	Price       float64   `json:"price" db:"price"`
	MaxStudents int       `json:"max_students" db:"max_students"`
	TeacherID   int       `json:"teacher_id" db:"teacher_id"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type ClassSession struct {
	ID          int       `json:"id" db:"id"`
	CourseID    int       `json:"course_id" db:"course_id"`
	TeacherID   int       `json:"teacher_id" db:"teacher_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Schedule    time.Time `json:"schedule" db:"schedule"`
	Duration    int       `json:"duration" db:"duration"` // minutes
	Room        string    `json:"room" db:"room"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type Enrollment struct {
	ID             int       `json:"id" db:"id"`
	StudentID      int       `json:"student_id" db:"student_id"`
	CourseID       int       `json:"course_id" db:"course_id"`
	EnrollmentDate time.Time `json:"enrollment_date" db:"enrollment_date"`
	Status         string    `json:"status" db:"status"`
	FinalGrade     *float64  `json:"final_grade" db:"final_grade"`
	Notes          string    `json:"notes" db:"notes"`
}

type Payment struct {
	ID          int       `json:"id" db:"id"`
	StudentID   int       `json:"student_id" db:"student_id"`
	Amount      float64   `json:"amount" db:"amount"`
	Type        string    `json:"type" db:"type"` // matricula, mensualidad, material, otro
	Description string    `json:"description" db:"description"`
	Date        time.Time `json:"date" db:"date"`
	Status      string    `json:"status" db:"status"`
	Method      string    `json:"payment_method" db:"payment_method"`
	Reference   string    `json:"reference" db:"reference"`
}

type Attendance struct {
	ID        int       `json:"id" db:"id"`
	StudentID int       `json:"student_id" db:"student_id"`
	ClassID   int       `json:"class_id" db:"class_id"`
	Date      time.Time `json:"date" db:"date"`
	Status    string    `json:"status" db:"status"`
	Notes     string    `json:"notes" db:"notes"`
}

type Grade struct {
	ID          int       `json:"id" db:"id"`
	StudentID   int       `json:"student_id" db:"student_id"`
	CourseID    int       `json:"course_id" db:"course_id"`
	Grade       float64   `json:"grade" db:"grade"`
	Type        string    `json:"type" db:"type"` // evaluacion, tarea, proyecto, final
	Description string    `json:"description" db:"description"`
	Date        time.Time `json:"date" db:"date"`
	Weight      float64   `json:"weight" db:"weight"`
}

// Inputs

type NewStudent struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone"`
	ParentPhone string `json:"parent_phone"`
	Address     string `json:"address"`
	BirthDate   string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email)
	return validate.Struct(ns)
}

type UpdateStudent struct {
	Name        string `json:"name"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone"`
	ParentPhone string `json:"parent_phone"`
	Address     string `json:"address"`
	BirthDate   string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate) error {
	us.Name = core.CleanString(us.Name)
	us.Email = core.CleanString(us.Email)
	return validate.Struct(us)
}

type NewCourse struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Duration    string  `json:"duration"`
	Price       float64 `json:"price" validate:"required,gte=0"`
	MaxStudents int     `json:"max_students" validate:"omitempty,gt=0"`
	TeacherID   int     `json:"teacher_id" validate:"required"`
	Status      string  `json:"status"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	return validate.Struct(nc)
}

type UpdateCourse struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Duration    string   `json:"duration"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	MaxStudents *int     `json:"max_students" validate:"omitempty,gt=0"`
	TeacherID   *int     `json:"teacher_id"`
	Status      string   `json:"status"`
}

func (uc *UpdateCourse) Validate(validate *validator.Validate) error {
	uc.Name = core.CleanString(uc.Name)
	return validate.Struct(uc)
}

type NewClassSession struct {
	CourseID    int    `json:"course_id" validate:"required"`
	TeacherID   int    `json:"teacher_id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Schedule    string `json:"schedule" validate:"required"`
	Duration    int    `json:"duration" validate:"omitempty,gt=0"`
	Room        string `json:"room"`
	Status      string `json:"status"`
}

func (nc *NewClassSession) Validate(validate *validator.Validate) error {
	nc.Title = core.CleanString(nc.Title)
	return validate.Struct(nc)
}

type NewEnrollment struct {
	StudentID int    `json:"student_id" validate:"required"`
	CourseID  int    `json:"course_id" validate:"required"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
}

func (ne *NewEnrollment) Validate(validate *validator.Validate) error {
	return validate.Struct(ne)
}

type NewPayment struct {
	StudentID   int     `json:"student_id" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Type        string  `json:"type" validate:"required"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Method      string  `json:"payment_method"`
	Reference   string  `json:"reference"`
}

func (np *NewPayment) Validate(validate *validator.Validate) error {
	return validate.Struct(np)
}

type NewAttendance struct {
	StudentID int    `json:"student_id" validate:"required"`
	ClassID   int    `json:"class_id" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
}

func (na *NewAttendance) Validate(validate *validator.Validate) error {
	return validate.Struct(na)
}

type NewGrade struct {
	StudentID   int     `json:"student_id" validate:"required"`
	CourseID    int     `json:"course_id" validate:"required"`
	Grade       float64 `json:"grade" validate:"gte=0"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight" validate:"omitempty,gt=0"`
}

func (ng *NewGrade) Validate(validate *validator.Validate) error {
	return validate.Struct(ng)
}
