package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/yogawell/member-service/internal/core/domain"
	logicv1 "github.com/yogawell/member-service/internal/logic/v1"
	"github.com/yogawell/member-service/middleware"
)

// AccountHandler handles HTTP requests for user accounts.
type AccountHandler struct {
	service *logicv1.AccountService
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(service *logicv1.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// RegisterRoutes mounts the account endpoints on a router group.
func (h *AccountHandler) RegisterRoutes(g *gin.RouterGroup) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.GET("/users/:username", h.Get)
}

// Register handles POST /register.
func (h *AccountHandler) Register(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()
	logger := middleware.GetLoggerFromGinContext(c)

	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		logger.Warn("Invalid register request", zap.Error(err))
		respondError(c, http.StatusBadRequest, sanitizeValidationError(err))
		return
	}

	account, err := h.service.Register(ctx, req)
	if err != nil {
		span.RecordError(err)
		logger.Error("Failed to register account", zap.Error(err))
		respondError(c, errorStatus(err), errorMessage(err))
		return
	}

	logger.Info("Account registered", zap.String("username", account.Username))
	respondOK(c, "Account registered successfully", account)
}

// Login handles POST /login. On success the account is returned; no
// session token is issued by this service.
func (h *AccountHandler) Login(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()
	logger := middleware.GetLoggerFromGinContext(c)

	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		logger.Warn("Invalid login request", zap.Error(err))
		respondError(c, http.StatusBadRequest, sanitizeValidationError(err))
		return
	}

	account, err := h.service.Login(ctx, req)
	if err != nil {
		span.RecordError(err)
		logger.Warn("Login failed", zap.String("username", req.Username))
		respondError(c, errorStatus(err), errorMessage(err))
		return
	}

	logger.Info("Login succeeded", zap.String("username", account.Username))
	respondOK(c, "Login successful", account)
}

// Get handles GET /users/:username.
func (h *AccountHandler) Get(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()
	logger := middleware.GetLoggerFromGinContext(c)

	account, err := h.service.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		span.RecordError(err)
		logger.Warn("Failed to get account", zap.Error(err))
		respondError(c, errorStatus(err), errorMessage(err))
		return
	}
	respondOK(c, "Account fetched successfully", account)
}
