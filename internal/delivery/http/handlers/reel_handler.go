package handlers

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"reel-processor/internal/domain/dto"
	"reel-processor/internal/usecases"
	consts "reel-processor/pkg/constants"
	"reel-processor/pkg/errors"
	"reel-processor/pkg/helper"
)

type ReelHandler struct {
	reelService usecases.ReelService
	validate    *validator.Validate
	log         logrus.FieldLogger
}

func NewReelHandler(reelService usecases.ReelService, log logrus.FieldLogger) *ReelHandler {
	return &ReelHandler{
		reelService: reelService,
		validate:    helper.NewValidator(),
		log:         log,
	}
}

// CreateReel
//
// @Summary      Create Reel
// @Description  Replaces the audio of an uploaded video, burns in two lines of text and re-encodes it to 1080x1920 MP4
// @Tags         Reel
// @Accept       multipart/form-data
// @Produce      video/mp4
// @Produce      json
// @Param        video         formData  file    true   "Source video"
// @Param        audio         formData  file    false  "Replacement audio track"
// @Param        audio_id      formData  string  false  "Track name from the audio library"
// @Param        primary_text  formData  string  false  "Centred headline text (max 500 chars)"
// @Param        source_text   formData  string  false  "Attribution text near the bottom (max 500 chars)"
// @Param        max_duration  formData  int     false  "Output length cap in seconds (1-600)"
// @Success      200           {file}    binary
// @Failure      400           {object}  dto.ErrorResponse
// @Failure      500           {object}  dto.ErrorResponse
// @Router       /process [post]
// @Router       /api/v1/reels [post]
// @Router       /create-reel [post]
func (h *ReelHandler) CreateReel(c *fiber.Ctx) error {
	req := &dto.CreateReelRequestDTO{}
	if err := c.BodyParser(req); err != nil {
		return errors.HandleError(c, h.log, errors.ErrValidation("invalid form"))
	}
	if err := h.validate.Struct(req); err != nil {
		return errors.HandleError(c, h.log, errors.ErrValidation(helper.ValidationMessage(err)))
	}

	// a missing field is reported by the service with the other validation rules
	video, _ := c.FormFile("video")
	audio, _ := c.FormFile("audio")

	res, err := h.reelService.CreateReel(c.UserContext(), req, video, audio)
	if err != nil {
		return errors.HandleError(c, h.log, err)
	}

	c.Set(fiber.HeaderContentType, consts.VideoContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="reel_%s.mp4"`, shortID(res.JobID)))
	c.Set("X-Job-ID", res.JobID)

	// Body is closed by fasthttp once written, which removes the scratch files.
	return c.SendStream(res.Body, int(res.Size))
}

// Health
//
// @Summary      Health check
// @Tags         Health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /health [get]
func (h *ReelHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Status:  consts.StatusHealthy,
		Service: consts.ServiceName,
		Version: consts.ServiceVersion,
	})
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
