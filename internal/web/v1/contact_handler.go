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

// ContactHandler handles HTTP requests for contact-us messages.
type ContactHandler struct {
	service *logicv1.ContactService
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(service *logicv1.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

// RegisterRoutes mounts the contact endpoints on a router group.
func (h *ContactHandler) RegisterRoutes(g *gin.RouterGroup) {
	g.POST("/", h.Create)
	g.GET("/", h.List)
	g.GET("/:phone_no", h.Get)
	g.PUT("/:phone_no", h.Update)
	g.PATCH("/:phone_no", h.Patch)
	g.DELETE("/:phone_no", h.Delete)
}

// Create handles POST / with form fields name, email, phone_no, message.
func (h *ContactHandler) Create(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()
	logger := middleware.GetLoggerFromGinContext(c)

	var req domain.CreateContactRequest
	if err := c.ShouldBind(&req); err != nil {
		span.RecordError(err)
		logger.Warn("Invalid contact create request", zap.Error(err))
		respondError(c, http.StatusBadRequest, sanitizeValidationError(err))
		return
	}

	contact, err := h.service.Create(ctx, req)
	if err != nil {
		span.RecordError(err)
		logger.Error("Failed to create contact", zap.Error(err))
		respondError(c, errorStatus(err), errorMessage(err))
		return
	}

	logger.Info("Contact created", zap.String("phone_no", contact.PhoneNo), zap.Int64("id", contact.ID))
	respondOK(c, "Contact created successfully", contact)
}

// List handles GET /.
func (h *ContactHandler) List(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()
	logger := middleware.GetLoggerFromGinContext(c)

	contacts, err := h.service.List(ctx)
	if err != nil {
		span.RecordError(err)
		logger.Error("Failed to list contacts", zap.Error(err))
		respondError(c, errorStatus(err), errorMessage(err))
		return
	}
	respondOK(c, "Contacts fetched successfully", contacts)
}

// Get handles GET /:phone_no.
func (h *ContactHandler) Get(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()
	logger := middleware.GetLoggerFromGinContext(c)

	contact, err := h.service.Get(ctx, c.Param("phone_no"))
	if err != nil {
		span.RecordError(err)
		logger.Warn("Failed to get contact", zap.Error(err))
		respondError(c, errorStatus(err), errorMessage(err))
		return
	}
	respondOK(c, "Contact fetched successfully", contact)
}

// Update handles PUT /:phone_no with form fields name, email, message.
func (h *ContactHandler) Update(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()
	logger := middleware.GetLoggerFromGinContext(c)

	var req domain.UpdateContactRequest
	if err := c.ShouldBind(&req); err != nil {
		span.RecordError(err)
		logger.Warn("Invalid contact update request", zap.Error(err))
		respondError(c, http.StatusBadRequest, sanitizeValidationError(err))
		return
	}

	contact, err := h.service.Update(ctx, c.Param("phone_no"), req)
	if err != nil {
		span.RecordError(err)
		logger.Error("Failed to update contact", zap.Error(err))
		respondError(c, errorStatus(err), errorMessage(err))
		return
	}

	logger.Info("Contact updated", zap.String("phone_no", contact.PhoneNo))
	respondOK(c, "Contact updated successfully", contact)
}

// Patch handles PATCH /:phone_no; only supplied fields change.
func (h *ContactHandler) Patch(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()
	logger := middleware.GetLoggerFromGinContext(c)

	var req domain.PatchContactRequest
	if err := c.ShouldBind(&req); err != nil {
		span.RecordError(err)
		logger.Warn("Invalid contact patch request", zap.Error(err))
		respondError(c, http.StatusBadRequest, sanitizeValidationError(err))
		return
	}

	contact, err := h.service.Patch(ctx, c.Param("phone_no"), req)
	if err != nil {
		span.RecordError(err)
		logger.Error("Failed to patch contact", zap.Error(err))
		respondError(c, errorStatus(err), errorMessage(err))
		return
	}

	logger.Info("Contact patched", zap.String("phone_no", contact.PhoneNo))
	respondOK(c, "Contact patched successfully", contact)
}

// Delete handles DELETE /:phone_no.
func (h *ContactHandler) Delete(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()
	logger := middleware.GetLoggerFromGinContext(c)

	if err := h.service.Delete(ctx, c.Param("phone_no")); err != nil {
		span.RecordError(err)
		logger.Warn("Failed to delete contact", zap.Error(err))
		respondError(c, errorStatus(err), errorMessage(err))
		return
	}

	logger.Info("Contact deleted", zap.String("phone_no", c.Param("phone_no")))
	respondOK(c, "Contact deleted successfully", nil)
}
