package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/elmehdi/phishmail/internal/adapters/store"
	"github.com/elmehdi/phishmail/internal/core"
	"github.com/elmehdi/phishmail/internal/report"
)

// Server exposes the analyzer over a JSON HTTP API and persists every
// analyzed email
type Server struct {
	echo       *echo.Echo
	service    *core.AnalyzerService
	generator  *report.Generator
	repository core.EmailRepository
	logger     *zap.Logger
	listenAddr string
}

// AnalyzeRequest is the submission payload
type AnalyzeRequest struct {
	Sender  string `json:"sender"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// AnalyzeResponse is the analysis result payload
type AnalyzeResponse struct {
	ID              string    `json:"id"`
	Verdict         string    `json:"verdict"`
	FinalScore      float64   `json:"final_score"`
	FinalPrediction int       `json:"final_prediction"`
	EmailProba      float64   `json:"email_proba"`
	URLs            []string  `json:"urls"`
	URLScores       []float64 `json:"url_scores"`
	Report          string    `json:"report"`
}

// EmailSummary is one row of the stored-email listing
type EmailSummary struct {
	ID         string    `json:"id"`
	Sender     string    `json:"sender"`
	Subject    string    `json:"subject"`
	Verdict    string    `json:"verdict"`
	FinalScore float64   `json:"final_score"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewServer creates the HTTP frontend
func NewServer(
	service *core.AnalyzerService,
	generator *report.Generator,
	repository core.EmailRepository,
	logger *zap.Logger,
	listenAddr string,
) *Server {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	server := &Server{
		echo:       e,
		service:    service,
		generator:  generator,
		repository: repository,
		logger:     logger,
		listenAddr: listenAddr,
	}

	// Routes
	e.GET("/health", server.healthCheck)
	e.POST("/api/v1/emails/analyze", server.analyze)
	e.GET("/api/v1/emails", server.list)
	e.GET("/api/v1/emails/:id", server.view)
	e.DELETE("/api/v1/emails/:id", server.remove)

	return server
}

func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "phishmail",
	})
}

func (s *Server) analyze(c echo.Context) error {
	var req AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	result, err := s.service.AnalyzeEmail(c.Request().Context(), &core.Email{
		From:    req.Sender,
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		s.logger.Error("Analysis failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "analysis failed"})
	}

	reportText := s.generator.Render(result)
	analyzed := &core.AnalyzedEmail{
		ID:              uuid.NewString(),
		Sender:          req.Sender,
		Subject:         req.Subject,
		Body:            req.Body,
		Verdict:         result.Bundle.Verdict,
		Report:          reportText,
		FinalScore:      result.Bundle.FinalScore,
		FinalPrediction: result.Bundle.FinalPrediction,
		URLs:            result.Signals.RawURLs,
		CreatedAt:       result.AnalyzedAt,
	}
	if err := s.repository.Save(c.Request().Context(), analyzed); err != nil {
		s.logger.Error("Failed to persist analyzed email", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to store result"})
	}

	return c.JSON(http.StatusOK, AnalyzeResponse{
		ID:              analyzed.ID,
		Verdict:         string(result.Bundle.Verdict),
		FinalScore:      result.Bundle.FinalScore,
		FinalPrediction: result.Bundle.FinalPrediction,
		EmailProba:      result.Bundle.EmailProba,
		URLs:            result.Signals.RawURLs,
		URLScores:       result.Bundle.PerURLProbas,
		Report:          reportText,
	})
}

func (s *Server) list(c echo.Context) error {
	emails, err := s.repository.List(c.Request().Context())
	if err != nil {
		s.logger.Error("Failed to list analyzed emails", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list emails"})
	}

	summaries := make([]EmailSummary, 0, len(emails))
	for _, email := range emails {
		summaries = append(summaries, EmailSummary{
			ID:         email.ID,
			Sender:     email.Sender,
			Subject:    email.Subject,
			Verdict:    string(email.Verdict),
			FinalScore: email.FinalScore,
			CreatedAt:  email.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, summaries)
}

func (s *Server) view(c echo.Context) error {
	email, err := s.repository.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "email not found"})
		}
		s.logger.Error("Failed to load analyzed email", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load email"})
	}
	return c.JSON(http.StatusOK, email)
}

func (s *Server) remove(c echo.Context) error {
	if err := s.repository.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "email not found"})
		}
		s.logger.Error("Failed to delete analyzed email", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to delete email"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ProcessEmail analyzes one email through the core pipeline
func (s *Server) ProcessEmail(ctx context.Context, email *core.Email) (*core.AnalysisResult, error) {
	return s.service.AnalyzeEmail(ctx, email)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("HTTP frontend starting", zap.String("address", s.listenAddr))

	go func() {
		if err := s.echo.Start(s.listenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()
	return nil
}

// Stop stops the HTTP server
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.echo.Shutdown(ctx)
}
