package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/makeasinger/lyricstudio/internal/logging"
	"github.com/makeasinger/lyricstudio/internal/model"
	"github.com/makeasinger/lyricstudio/internal/service"
	"github.com/makeasinger/lyricstudio/internal/studio"
	"github.com/makeasinger/lyricstudio/pkg/response"
)

type LyricsHandler struct {
	service   service.LyricsGenerator
	validator *validator.Validate
}

func NewLyricsHandler(svc service.LyricsGenerator, v *validator.Validate) *LyricsHandler {
	return &LyricsHandler{
		service:   svc,
		validator: v,
	}
}

// Generate handles POST /generate-lyrics
func (h *LyricsHandler) Generate(c *fiber.Ctx) error {
	var req model.GenerationRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.ValidationError(c, "Invalid request body", nil)
		}
	}
	req.ApplyDefaults()

	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.service.Generate(c.UserContext(), &req)
	if err != nil {
		logging.NewLogger(c.UserContext()).Errorf("lyrics generation failed: %v", err)
		return response.AIError(c, studio.FailureMessage)
	}

	return response.OK(c, result)
}

// formatValidationErrors formats validator errors for response
func formatValidationErrors(err error) interface{} {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		errors := make(map[string]string)
		for _, e := range validationErrors {
			errors[e.Field()] = e.Tag()
		}
		return errors
	}
	return nil
}
