package handling

import (
	"errors"
	"lojastreet_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func HandleError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) error {
	logger.Error("An error occurred", gecho.Field("error", err), gecho.Field("msg", msg), gecho.WithCallerSkip(3))

	gecho.InternalServerError(w, gecho.Send())
	return nil
}

// HandleServiceError writes the response matching a service error. Store and
// provider failures are logged and answered without details.
func HandleServiceError(w http.ResponseWriter, logger *gecho.Logger, err error, msg string) error {
	var ve *lib.ValidationError
	switch {
	case errors.As(err, &ve):
		logger.Debug("Validation failed", gecho.Field("error", err), gecho.Field("msg", msg))
		gecho.BadRequest(w,
			gecho.WithMessage("Validation failed"),
			gecho.WithData(ve.Errors),
			gecho.Send(),
		)
	case errors.Is(err, lib.ErrNotFound):
		gecho.NotFound(w, gecho.WithMessage("Resource not found"), gecho.Send())
	case errors.Is(err, lib.ErrConflict):
		gecho.Conflict(w, gecho.WithMessage("Resource already exists"), gecho.Send())
	case errors.Is(err, lib.ErrInvalidCredentials):
		gecho.Unauthorized(w, gecho.WithMessage("Invalid credentials"), gecho.Send())
	case errors.Is(err, lib.ErrInvalidToken), errors.Is(err, lib.ErrExpiredToken):
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
	case errors.Is(err, lib.ErrPaymentNotConfigured):
		logger.Warn("Payment provider not configured", gecho.Field("msg", msg))
		gecho.ServiceUnavailable(w, gecho.WithMessage("Payment provider is not configured"), gecho.Send())
	case errors.Is(err, lib.ErrPaymentProvider):
		logger.Error("Payment provider failure", gecho.Field("error", err), gecho.Field("msg", msg))
		gecho.InternalServerError(w, gecho.WithMessage("Payment provider error"), gecho.Send())
	default:
		return HandleError(err, msg, logger, w)
	}

	return nil
}
