package handler

import "github.com/gin-gonic/gin"

// Handlers bundles the handlers mounted by RegisterRoutes.
type Handlers struct {
	Auth       *AuthHandler
	Dashboard  *DashboardHandler
	Courses    *CourseHandler
	Enrollment *EnrollmentHandler
	Withdrawal *WithdrawalHandler
	Attendance *AttendanceHandler
	Marks      *MarksHandler
	Profile    *ProfileHandler
	Transcript *TranscriptHandler
	Metrics    *MetricsHandler
}

// RegisterRoutes mounts ops endpoints at the root and the portal API under prefix.
// Every /me route runs behind authenticate.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers, authenticate gin.HandlerFunc) {
	if h.Metrics != nil {
		r.GET("/health", h.Metrics.Health)
		r.GET("/ready", h.Metrics.Ready)
		r.GET("/metrics", h.Metrics.Prometheus)
	}

	api := r.Group(prefix)
	api.POST("/auth/login", h.Auth.Login)

	me := api.Group("/me")
	me.Use(authenticate)
	me.GET("/dashboard", h.Dashboard.Get)
	me.GET("/courses", h.Courses.List)
	me.GET("/enrollment", h.Enrollment.Options)
	me.POST("/enrollment", h.Enrollment.Enroll)
	me.GET("/withdrawals", h.Withdrawal.List)
	me.POST("/withdrawals", h.Withdrawal.Withdraw)
	me.GET("/attendance", h.Attendance.Courses)
	me.GET("/attendance/:assignCourseId", h.Attendance.Detail)
	me.GET("/marks", h.Marks.Courses)
	me.GET("/marks/:assignCourseId", h.Marks.Detail)
	me.GET("/profile", h.Profile.Get)
	me.PATCH("/profile", h.Profile.Update)
	me.GET("/transcript", h.Transcript.Download)
}
