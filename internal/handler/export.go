package handler

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/makeasinger/lyricstudio/internal/document"
	"github.com/makeasinger/lyricstudio/internal/logging"
	"github.com/makeasinger/lyricstudio/internal/model"
	"github.com/makeasinger/lyricstudio/internal/service"
	"github.com/makeasinger/lyricstudio/internal/studio"
	"github.com/makeasinger/lyricstudio/pkg/response"
)

type ExportHandler struct {
	service   *service.ExportService
	validator *validator.Validate
}

func NewExportHandler(svc *service.ExportService, v *validator.Validate) *ExportHandler {
	return &ExportHandler{
		service:   svc,
		validator: v,
	}
}

func (h *ExportHandler) parse(c *fiber.Ctx) (*model.ExportPDFRequest, error) {
	var req model.ExportPDFRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, response.ValidationError(c, "Invalid request body", nil)
	}
	if err := h.validator.Struct(&req); err != nil {
		return nil, response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}
	if req.Title == "" {
		req.Title = studio.ExtractTitle(req.Lyrics)
	}
	return &req, nil
}

// PDF handles POST /export/pdf
func (h *ExportHandler) PDF(c *fiber.Ctx) error {
	req, err := h.parse(c)
	if req == nil {
		return err
	}

	var buf bytes.Buffer
	stats, err := h.service.PDF(&buf, req)
	if err != nil {
		return exportError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, h.service.FileName()))
	c.Set("X-Page-Count", fmt.Sprintf("%d", stats.Pages))
	return c.Send(buf.Bytes())
}

// Share handles POST /export/pdf/share
func (h *ExportHandler) Share(c *fiber.Ctx) error {
	if !h.service.StorageConfigured() {
		return response.ServiceUnavailable(c, "Storage is not configured")
	}

	req, err := h.parse(c)
	if req == nil {
		return err
	}

	result, err := h.service.Share(c.UserContext(), req)
	if err != nil {
		return exportError(c, err)
	}

	return response.Created(c, result)
}

func exportError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, document.ErrNothingToExport):
		return response.NothingToExport(c)
	case errors.Is(err, document.ErrUnsupportedText):
		return response.UnsupportedText(c)
	}
	logging.NewLogger(c.UserContext()).Errorf("pdf export failed: %v", err)
	return response.ServiceError(c, "PDF export failed")
}
