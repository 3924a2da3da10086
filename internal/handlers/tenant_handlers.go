package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"rentdesk/internal/apperrors"
	"rentdesk/internal/common"
	"rentdesk/internal/services"

	"github.com/labstack/echo/v4"
)

// TenantHandlers handles tenant-related HTTP requests, including the
// profile photo stored in object storage.
type TenantHandlers struct {
	tenantService services.TenantService
	photoService  services.PhotoService
	photoBucket   string
}

func NewTenantHandlers(tenantService services.TenantService, photoService services.PhotoService, photoBucket string) *TenantHandlers {
	return &TenantHandlers{
		tenantService: tenantService,
		photoService:  photoService,
		photoBucket:   photoBucket,
	}
}

func (h *TenantHandlers) CreateTenant(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return common.RespondError(c, err)
	}

	var req services.TenantWriteRequest
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, apperrors.Validation("body", "invalid request format"))
	}

	tenant, err := h.tenantService.Create(c.Request().Context(), actor, &req)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, tenant)
}

func (h *TenantHandlers) GetTenant(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return common.RespondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return common.RespondError(c, err)
	}

	tenant, err := h.tenantService.GetByID(c.Request().Context(), actor, id)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, tenant)
}

func (h *TenantHandlers) UpdateTenant(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return common.RespondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return common.RespondError(c, err)
	}

	var req services.TenantWriteRequest
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, apperrors.Validation("body", "invalid request format"))
	}

	tenant, err := h.tenantService.Update(c.Request().Context(), actor, id, &req)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, tenant)
}

func (h *TenantHandlers) DeleteTenant(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return common.RespondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return common.RespondError(c, err)
	}

	if err := h.tenantService.Delete(c.Request().Context(), actor, id); err != nil {
		return common.RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TenantHandlers) ListTenants(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return common.RespondError(c, err)
	}
	limit, offset := pagination(c)

	tenants, err := h.tenantService.List(c.Request().Context(), actor, limit, offset)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"tenants": tenants,
		"limit":   limit,
		"offset":  offset,
	})
}

// UploadPhoto stores a multipart "photo" file in object storage and
// records the object key on the tenant.
func (h *TenantHandlers) UploadPhoto(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return common.RespondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return common.RespondError(c, err)
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return common.RespondError(c, apperrors.Validation("photo", "photo file is required"))
	}

	src, err := file.Open()
	if err != nil {
		return common.RespondError(c, err)
	}
	defer src.Close()

	ctx := c.Request().Context()
	objectName := fmt.Sprintf("tenants/%s%s", id, filepath.Ext(file.Filename))
	contentType := file.Header.Get("Content-Type")
	if err := h.photoService.UploadPhoto(ctx, h.photoBucket, objectName, src, file.Size, contentType); err != nil {
		return common.RespondError(c, err)
	}

	if err := h.tenantService.SetPhoto(ctx, actor, id, &objectName); err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"photo_object": objectName,
	})
}

// GetPhotoURL returns a short-lived presigned download link for the
// tenant's photo.
func (h *TenantHandlers) GetPhotoURL(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return common.RespondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return common.RespondError(c, err)
	}

	tenant, err := h.tenantService.GetByID(c.Request().Context(), actor, id)
	if err != nil {
		return common.RespondError(c, err)
	}
	if tenant.PhotoObject == nil {
		return common.RespondError(c, apperrors.NotFound("tenant photo"))
	}

	url, err := h.photoService.GetPresignedURL(h.photoBucket, *tenant.PhotoObject, 15*time.Minute)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"url": url,
	})
}
