package contact

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	SuccessMessage = "Message sent successfully! I'll get back to you soon."
	failureMessage = "Failed to process your message. Please try again later."
)

// Service validates a submission and hands it to a Recorder.
type Service struct {
	recorder Recorder
	logger   *zap.Logger
}

func NewService(recorder Recorder, logger *zap.Logger) *Service {
	return &Service{recorder: recorder, logger: logger}
}

// Submit returns a *ValidationError for bad input and any other error for
// unexpected failures. A panicking recorder is reported as an error.
func (s *Service) Submit(ctx context.Context, sub Submission) (id string, err error) {
	sub = sub.Normalize()
	if err := sub.Validate(); err != nil {
		return "", err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recording submission: panic: %v", r)
		}
	}()
	id, err = s.recorder.Record(ctx, sub)
	if err != nil {
		return "", fmt.Errorf("recording submission: %w", err)
	}
	return id, nil
}

// Status classifies err as a client or server error.
func Status(err error) int {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// PublicMessage is what callers may see for err.
func PublicMessage(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Reason
	}
	return failureMessage
}

// APIHandler serves POST /api/contact.
func (s *Service) APIHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var sub Submission
		if err := c.ShouldBindJSON(&sub); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		id, err := s.Submit(c.Request.Context(), sub)
		if err != nil {
			s.logFailure(err)
			c.JSON(Status(err), gin.H{"error": PublicMessage(err)})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": SuccessMessage, "success": true, "id": id})
	}
}

// FormHandler serves the HTMX form post and renders the success or error
// fragment.
func (s *Service) FormHandler(successTemplate, errorTemplate string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sub Submission
		if err := c.ShouldBind(&sub); err != nil {
			c.HTML(http.StatusBadRequest, errorTemplate, gin.H{"error": "Invalid request body"})
			return
		}
		if _, err := s.Submit(c.Request.Context(), sub); err != nil {
			s.logFailure(err)
			c.HTML(Status(err), errorTemplate, gin.H{"error": PublicMessage(err)})
			return
		}
		c.HTML(http.StatusOK, successTemplate, gin.H{"success": SuccessMessage})
	}
}

func (s *Service) logFailure(err error) {
	if Status(err) == http.StatusBadRequest {
		s.logger.Debug("rejected contact submission", zap.Error(err))
		return
	}
	s.logger.Error("contact submission failed", zap.Error(err))
}
