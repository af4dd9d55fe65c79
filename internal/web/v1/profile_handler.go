package v1

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/yogawell/member-service/internal/core/domain"
	logicv1 "github.com/yogawell/member-service/internal/logic/v1"
	"github.com/yogawell/member-service/middleware"
)

// ProfileHandler handles HTTP requests for personal-detail profiles.
type ProfileHandler struct {
	service *logicv1.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(service *logicv1.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// RegisterRoutes mounts the profile endpoints on a router group.
func (h *ProfileHandler) RegisterRoutes(g *gin.RouterGroup) {
	g.POST("/submit-details/", h.Create)
	g.GET("/get-all/", h.List)
	g.GET("/get/:contact_number", h.Get)
	g.PUT("/update/:contact_number", h.Update)
	g.PATCH("/patch/:contact_number", h.Patch)
	g.DELETE("/delete/:contact_number", h.Delete)
}

// readPhoto reads the profile_photo multipart part into memory.
func readPhoto(c *gin.Context) (*domain.PhotoUpload, error) {
	header, err := c.FormFile("profile_photo")
	if err != nil {
		return nil, err
	}
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open photo part: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read photo part: %w", err)
	}
	return &domain.PhotoUpload{Filename: filepath.Base(header.Filename), Data: data}, nil
}

// Create handles POST /submit-details/ with profile fields and a
// required profile_photo attachment.
func (h *ProfileHandler) Create(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()
	logger := middleware.GetLoggerFromGinContext(c)

	var req domain.CreateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		span.RecordError(err)
		logger.Warn("Invalid profile create request", zap.Error(err))
		respondError(c, http.StatusBadRequest, sanitizeValidationError(err))
		return
	}

	upload, err := readPhoto(c)
	if err != nil {
		span.RecordError(err)
		logger.Warn("Missing or unreadable profile photo", zap.Error(err))
		respondError(c, http.StatusBadRequest, "profile_photo attachment is required")
		return
	}

	profile, err := h.service.Create(ctx, req, upload)
	if err != nil {
		span.RecordError(err)
		logger.Error("Failed to create profile", zap.Error(err))
		respondError(c, errorStatus(err), errorMessage(err))
		return
	}

	logger.Info("Profile created", zap.String("phone_no", profile.PhoneNo), zap.Int64("id", profile.ID))
	respondOK(c, "Profile created successfully", profile)
}

// List handles GET /get-all/.
func (h *ProfileHandler) List(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()
	logger := middleware.GetLoggerFromGinContext(c)

	profiles, err := h.service.List(ctx)
	if err != nil {
		span.RecordError(err)
		logger.Error("Failed to list profiles", zap.Error(err))
		respondError(c, errorStatus(err), errorMessage(err))
		return
	}
	respondOK(c, "Profiles fetched successfully", profiles)
}

// Get handles GET /get/:contact_number.
func (h *ProfileHandler) Get(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()
	logger := middleware.GetLoggerFromGinContext(c)

	profile, err := h.service.Get(ctx, c.Param("contact_number"))
	if err != nil {
		span.RecordError(err)
		logger.Warn("Failed to get profile", zap.Error(err))
		respondError(c, errorStatus(err), errorMessage(err))
		return
	}
	respondOK(c, "Profile fetched successfully", profile)
}

// Update handles PUT /update/:contact_number. A new photo attachment is
// required; the old asset is removed after the new one is in place.
func (h *ProfileHandler) Update(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()
	logger := middleware.GetLoggerFromGinContext(c)

	var req domain.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		span.RecordError(err)
		logger.Warn("Invalid profile update request", zap.Error(err))
		respondError(c, http.StatusBadRequest, sanitizeValidationError(err))
		return
	}

	upload, err := readPhoto(c)
	if err != nil {
		span.RecordError(err)
		logger.Warn("Missing or unreadable profile photo", zap.Error(err))
		respondError(c, http.StatusBadRequest, "profile_photo attachment is required")
		return
	}

	profile, err := h.service.Update(ctx, c.Param("contact_number"), req, upload)
	if err != nil {
		span.RecordError(err)
		logger.Error("Failed to update profile", zap.Error(err))
		respondError(c, errorStatus(err), errorMessage(err))
		return
	}

	logger.Info("Profile updated", zap.String("phone_no", profile.PhoneNo))
	respondOK(c, "Profile updated successfully", profile)
}

// Patch handles PATCH /patch/:contact_number; all fields including the
// photo attachment are optional.
func (h *ProfileHandler) Patch(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()
	logger := middleware.GetLoggerFromGinContext(c)

	var req domain.PatchProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		span.RecordError(err)
		logger.Warn("Invalid profile patch request", zap.Error(err))
		respondError(c, http.StatusBadRequest, sanitizeValidationError(err))
		return
	}

	// The photo part is optional on patch; absence keeps the stored file.
	upload, err := readPhoto(c)
	if err != nil {
		upload = nil
	}

	profile, err := h.service.Patch(ctx, c.Param("contact_number"), req, upload)
	if err != nil {
		span.RecordError(err)
		logger.Error("Failed to patch profile", zap.Error(err))
		respondError(c, errorStatus(err), errorMessage(err))
		return
	}

	logger.Info("Profile patched", zap.String("phone_no", profile.PhoneNo))
	respondOK(c, "Profile patched successfully", profile)
}

// Delete handles DELETE /delete/:contact_number; the photo asset is
// removed along with the record.
func (h *ProfileHandler) Delete(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()
	logger := middleware.GetLoggerFromGinContext(c)

	if err := h.service.Delete(ctx, c.Param("contact_number")); err != nil {
		span.RecordError(err)
		logger.Warn("Failed to delete profile", zap.Error(err))
		respondError(c, errorStatus(err), errorMessage(err))
		return
	}

	logger.Info("Profile deleted", zap.String("phone_no", c.Param("contact_number")))
	respondOK(c, "Profile deleted successfully", nil)
}
