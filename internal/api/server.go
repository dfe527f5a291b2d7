// Package api serves the smooth L1 loss over HTTP.
package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"

	"github.com/born-ml/smoothl1/internal/logger"
	"github.com/born-ml/smoothl1/internal/lossio"
	"github.com/born-ml/smoothl1/internal/nn"
)

// DefaultMaxBodyBytes caps request bodies when no limit is configured.
const DefaultMaxBodyBytes int64 = 64 << 20

// ErrorBody is the payload of every non-2xx response.
type ErrorBody struct {
	Error ResponseError `json:"error"`
}

// ResponseError describes a failed request.
type ResponseError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Server routes loss requests to an Evaluator.
type Server struct {
	evaluator    *lossio.Evaluator
	layers       []string
	log          logger.Logger
	maxBodyBytes int64
}

// NewServer creates a Server. layers is the list reported by GET /v1/layers.
func NewServer(evaluator *lossio.Evaluator, layers []string, log logger.Logger, maxBodyBytes int64) *Server {
	if log == nil {
		log = logger.Discard()
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &Server{
		evaluator:    evaluator,
		layers:       layers,
		log:          log,
		maxBodyBytes: maxBodyBytes,
	}
}

// NewEcho returns an echo instance with request logging, panic recovery
// and the server's routes.
func NewEcho(s *Server) *echo.Echo {
	e := echo.New()
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())
	s.Register(e)
	return e
}

// Register mounts the routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/healthz", s.handleHealth)
	e.GET("/v1/layers", s.handleLayers)
	e.POST("/v1/smooth-l1", s.handleSmoothL1)
}

func (s *Server) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLayers(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{"layers": s.layers})
}

func (s *Server) handleSmoothL1(c *echo.Context) error {
	body, err := io.ReadAll(http.MaxBytesReader(c.Response(), c.Request().Body, s.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return writeError(c, http.StatusRequestEntityTooLarge, "invalid_request_error", err.Error())
		}
		return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error())
	}
	req, err := lossio.DecodeRequest(bytes.NewReader(body))
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error())
	}
	if p := c.QueryParam("precision"); p != "" {
		req.Precision = p
	}

	res, err := s.evaluator.Evaluate(c.Request().Context(), req)
	switch {
	case err == nil:
	case errors.Is(err, lossio.ErrInvalidDocument),
		errors.Is(err, nn.ErrShapeMismatch),
		errors.Is(err, nn.ErrInvalidArity):
		return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error())
	default:
		s.log.Error("evaluation failed", "error", err)
		return writeError(c, http.StatusInternalServerError, "server_error", err.Error())
	}

	c.Response().Header().Set("X-Request-Id", res.ID)
	s.log.Debug("evaluated", "id", res.ID, "items", len(res.Loss), "precision", res.Precision, "weighted", res.Weighted)
	return c.JSON(http.StatusOK, res)
}

func writeError(c *echo.Context, status int, errType, msg string) error {
	return c.JSON(status, ErrorBody{
		Error: ResponseError{Message: msg, Type: errType},
	})
}
