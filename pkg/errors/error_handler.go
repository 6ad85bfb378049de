package errors

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

func StatusFor(code string) int {
	switch code {
	case CodeValidation:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// HandleError writes the JSON error body. The wrapped error is logged server-side only.
func HandleError(c *fiber.Ctx, log logrus.FieldLogger, err error) error {
	if err == nil {
		return nil
	}

	var re *ReelError
	if !stderrors.As(err, &re) {
		re = ErrInternal(err)
	}

	entry := log.WithFields(logrus.Fields{
		"code":       re.Code,
		"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
	})
	status := StatusFor(re.Code)
	if status >= fiber.StatusInternalServerError {
		entry.WithError(re.Err).Error("request failed")
	} else {
		entry.Info(re.Message)
	}

	return c.Status(status).JSON(fiber.Map{
		"error":   re.Code,
		"message": re.Message,
	})
}

// FiberErrorHandler renders errors Fiber raises before a handler runs (body too large,
// unknown route) in the same JSON shape as HandleError.
func FiberErrorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if !stderrors.As(err, &fe) {
			return HandleError(c, log, err)
		}
		code := CodeValidation
		if fe.Code >= fiber.StatusInternalServerError {
			code = CodeInternal
		}
		log.WithFields(logrus.Fields{
			"status":     fe.Code,
			"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
		}).Info(fe.Message)
		return c.Status(fe.Code).JSON(fiber.Map{
			"error":   code,
			"message": fe.Message,
		})
	}
}
