// Package httpapi exposes the attendance use cases over HTTP. The adapter is
// deliberately thin: request decoding and error mapping only, no business
// rules.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PabodaWA/CricketXpert-sub001/internal/domain"
	"github.com/PabodaWA/CricketXpert-sub001/internal/ports/input"
)

// Server routes attendance and progress requests to the use cases.
type Server struct {
	router     *gin.Engine
	attendance input.AttendanceUseCase
	progress   input.ProgressUseCase
}

// NewServer creates a Server with routes registered.
func NewServer(attendance input.AttendanceUseCase, progress input.ProgressUseCase) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	s := &Server{
		router:     router,
		attendance: attendance,
		progress:   progress,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api/v1")
	api.POST("/sessions/:sessionID/attendance", s.markAttendance)
	api.GET("/sessions/:sessionID/participants", s.sessionParticipants)
	api.GET("/programs/:programID/players/:userID/progress", s.playerProgress)
}

// Run starts the HTTP server on the given port.
func (s *Server) Run(port string) error {
	return s.router.Run(":" + port)
}

// Handler exposes the router, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

type attendanceEntryBody struct {
	ParticipantID string `json:"participantId"`
	Attended      bool   `json:"attended"`
	Rating        int    `json:"rating,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

type markAttendanceBody struct {
	Entries []attendanceEntryBody `json:"entries"`
	Actor   string                `json:"actor"`
	Locale  string                `json:"locale,omitempty"`
}

type entryResultBody struct {
	ParticipantID string `json:"participantId"`
	PreviousState string `json:"previousState"`
	NewState      string `json:"newState"`
	Notified      bool   `json:"notified"`
	Error         string `json:"error,omitempty"`
}

type outcomeBody struct {
	ParticipantID string `json:"participantId"`
	Contact       string `json:"contact,omitempty"`
	Outcome       string `json:"outcome"`
	Reason        string `json:"reason,omitempty"`
}

type reportBody struct {
	Sent    int           `json:"sent"`
	Failed  int           `json:"failed"`
	Skipped int           `json:"skipped"`
	Details []outcomeBody `json:"details"`
}

func (s *Server) markAttendance(c *gin.Context) {
	var body markAttendanceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	req := input.MarkAttendanceRequest{
		SessionID: c.Param("sessionID"),
		Actor:     body.Actor,
		Locale:    body.Locale,
	}
	for _, e := range body.Entries {
		req.Entries = append(req.Entries, input.AttendanceEntry{
			ParticipantID: e.ParticipantID,
			Attended:      e.Attended,
			Rating:        e.Rating,
			Notes:         e.Notes,
		})
	}

	report, err := s.attendance.MarkAttendance(c.Request.Context(), req)
	if err != nil {
		s.renderError(c, err)
		return
	}

	results := make([]entryResultBody, len(report.Results))
	for i, r := range report.Results {
		results[i] = entryResultBody{
			ParticipantID: r.ParticipantID,
			PreviousState: string(r.Previous),
			NewState:      string(r.New),
			Notified:      r.Notified,
		}
		if r.Error != nil {
			results[i].Error = r.Error.Error()
		}
	}
	notifications := reportBody{
		Sent:    report.Notifications.Sent,
		Failed:  report.Notifications.Failed,
		Skipped: report.Notifications.Skipped,
		Details: make([]outcomeBody, len(report.Notifications.Details)),
	}
	for i, d := range report.Notifications.Details {
		notifications.Details[i] = outcomeBody{
			ParticipantID: d.ParticipantID,
			Contact:       d.Contact,
			Outcome:       d.Outcome,
			Reason:        d.Reason,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"results":            results,
		"notificationReport": notifications,
	})
}

func (s *Server) sessionParticipants(c *gin.Context) {
	participants, err := s.attendance.GetSessionParticipants(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	type participantBody struct {
		ID       string `json:"id"`
		UserID   string `json:"userId,omitempty"`
		State    string `json:"state"`
		MarkedBy string `json:"markedBy,omitempty"`
		Rating   int    `json:"rating,omitempty"`
		Notes    string `json:"notes,omitempty"`
	}
	out := make([]participantBody, len(participants))
	for i, p := range participants {
		out[i] = participantBody{
			ID:       p.ID,
			UserID:   p.User.UserID(),
			State:    string(p.State),
			MarkedBy: p.MarkedBy,
			Rating:   p.Rating,
			Notes:    p.Notes,
		}
	}
	c.JSON(http.StatusOK, gin.H{"participants": out})
}

func (s *Server) playerProgress(c *gin.Context) {
	progress, err := s.progress.GetProgress(c.Request.Context(), c.Param("programID"), c.Param("userID"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"totalSessions":    progress.TotalSessions,
		"attendedSessions": progress.AttendedSessions,
		"percentage":       progress.Percentage,
		"complete":         progress.IsComplete(),
	})
}

func (s *Server) renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidBatch):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrEnrollmentNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrSessionNotStarted),
		errors.Is(err, domain.ErrConcurrentBatch):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}
