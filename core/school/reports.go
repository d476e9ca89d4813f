package school

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"
)

type (
	DashboardStats struct {
		TotalStudents  int     `json:"total_students"`
		TotalCourses   int     `json:"total_courses"`
		TotalClasses   int     `json:"total_classes"`
		MonthlyIncome  float64 `json:"monthly_income"`
		AttendanceRate float64 `json:"attendance_rate"`
	}

	Activity struct {
		Type    string    `json:"type"`
		Message string    `json:"message"`
		Date    time.Time `json:"date"`
	}

	StudentPerformance struct {
		StudentID      int     `json:"student_id"`
		StudentName    string  `json:"student_name"`
		AverageGrade   float64 `json:"average_grade"`
		AttendanceRate float64 `json:"attendance_rate"`
	}

	FinancialReport struct {
		TotalIncome   float64            `json:"total_income"`
		IncomeByType  map[string]float64 `json:"income_by_type"`
		MonthlyIncome map[string]float64 `json:"monthly_income"`
	}
)

// Stats computes the dashboard counters: active students, active courses,
// scheduled classes, income collected this month and the global attendance rate.
func (svc *Service) Stats(ctx context.Context, now time.Time) (DashboardStats, error) {
	var stats DashboardStats

	students, err := svc.repo.QueryAllStudents(ctx)
	if err != nil {
		return stats, err
	}
	for _, st := range students {
		if st.Status == StudentActive {
			stats.TotalStudents++
		}
	}

	courses, err := svc.repo.QueryAllCourses(ctx)
	if err != nil {
		return stats, err
	}
	for _, c := range courses {
		if c.Status == CourseActive {
			stats.TotalCourses++
		}
	}

	classes, err := svc.repo.QueryAllClassSessions(ctx)
	if err != nil {
		return stats, err
	}
	for _, cs := range classes {
		if cs.Status == ClassScheduled {
			stats.TotalClasses++
		}
	}

	payments, err := svc.repo.QueryAllPayments(ctx)
	if err != nil {
		return stats, err
	}
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for _, p := range payments {
		if p.Status == PaymentPaid && !p.Date.Before(monthStart) {
			stats.MonthlyIncome += p.Amount
		}
	}

	attendance, err := svc.repo.QueryAllAttendance(ctx)
	if err != nil {
		return stats, err
	}
	stats.AttendanceRate = attendanceRate(attendance)
	return stats, nil
}

// RecentActivities merges the latest enrollments and payments into a single
// feed, newest first, capped at 10 entries.
func (svc *Service) RecentActivities(ctx context.Context) ([]Activity, error) {
	enrollments, err := svc.repo.QueryAllEnrollments(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := svc.repo.QueryAllPayments(ctx)
	if err != nil {
		return nil, err
	}
	students, err := svc.repo.QueryAllStudents(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := svc.repo.QueryAllCourses(ctx)
	if err != nil {
		return nil, err
	}

	studentNames := make(map[int]string, len(students))
	for _, st := range students {
		studentNames[st.ID] = st.Name
	}
	courseNames := make(map[int]string, len(courses))
	for _, c := range courses {
		courseNames[c.ID] = c.Name
	}

	sort.Slice(enrollments, func(i, j int) bool {
		return enrollments[i].EnrollmentDate.After(enrollments[j].EnrollmentDate)
	})
	sort.Slice(payments, func(i, j int) bool {
		return payments[i].Date.After(payments[j].Date)
	})

	activities := make([]Activity, 0, 10)
	for i, e := range enrollments {
		if i == 5 {
			break
		}
		activities = append(activities, Activity{
			Type:    "enrollment",
			Message: fmt.Sprintf("%s se matriculó en %s", studentNames[e.StudentID], courseNames[e.CourseID]),
			Date:    e.EnrollmentDate,
		})
	}
	for i, p := range payments {
		if i == 5 {
			break
		}
		activities = append(activities, Activity{
			Type:    "payment",
			Message: fmt.Sprintf("%s realizó un pago de $%v", studentNames[p.StudentID], p.Amount),
			Date:    p.Date,
		})
	}

	sort.Slice(activities, func(i, j int) bool { return activities[i].Date.After(activities[j].Date) })
	if len(activities) > 10 {
		activities = activities[:10]
	}
	return activities, nil
}

// StudentPerformanceReport returns the average grade and attendance rate per student.
func (svc *Service) StudentPerformanceReport(ctx context.Context) ([]StudentPerformance, error) {
	students, err := svc.repo.QueryAllStudents(ctx)
	if err != nil {
		return nil, err
	}
	grades, err := svc.repo.QueryAllGrades(ctx)
	if err != nil {
		return nil, err
	}
	attendance, err := svc.repo.QueryAllAttendance(ctx)
	if err != nil {
		return nil, err
	}

	gradesByStudent := make(map[int][]Grade)
	for _, g := range grades {
		gradesByStudent[g.StudentID] = append(gradesByStudent[g.StudentID], g)
	}
	attendanceByStudent := make(map[int][]Attendance)
	for _, a := range attendance {
		attendanceByStudent[a.StudentID] = append(attendanceByStudent[a.StudentID], a)
	}

	report := make([]StudentPerformance, 0, len(students))
	for _, st := range students {
		var avg float64
		if gs := gradesByStudent[st.ID]; len(gs) > 0 {
			for _, g := range gs {
				avg += g.Grade
			}
			avg = round2(avg / float64(len(gs)))
		}
		report = append(report, StudentPerformance{
			StudentID:      st.ID,
			StudentName:    st.Name,
			AverageGrade:   avg,
			AttendanceRate: attendanceRate(attendanceByStudent[st.ID]),
		})
	}
	return report, nil
}

// FinancialReportFor aggregates paid payments: overall total, totals per
// payment type, and totals per month over the 6 months up to now.
func (svc *Service) FinancialReportFor(ctx context.Context, now time.Time) (FinancialReport, error) {
	payments, err := svc.repo.QueryAllPayments(ctx)
	if err != nil {
		return FinancialReport{}, err
	}

	report := FinancialReport{
		IncomeByType:  make(map[string]float64),
		MonthlyIncome: make(map[string]float64),
	}

	var paid []Payment
	for _, p := range payments {
		if p.Status == PaymentPaid {
			paid = append(paid, p)
			report.TotalIncome += p.Amount
			report.IncomeByType[p.Type] += p.Amount
		}
	}

	for i := 0; i < 6; i++ {
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		key := month.Format("2006-01")
		var total float64
		for _, p := range paid {
			if p.Date.Year() == month.Year() && p.Date.Month() == month.Month() {
				total += p.Amount
			}
		}
		report.MonthlyIncome[key] = total
	}
	return report, nil
}

func attendanceRate(records []Attendance) float64 {
	if len(records) == 0 {
		return 0
	}
	var present int
	for _, a := range records {
		if a.Status == AttendancePresent {
			present++
		}
	}
	return round2(float64(present) / float64(len(records)) * 100)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
