package api

import (
	"github.com/JorgeSaicoski/microservice-commons/responses"
	"github.com/gin-gonic/gin"

	"github.com/JorgeSaicoski/time-keeper/internal/apperrors"
)

// RespondError maps a service failure to its stable response code. Each
// kind keeps a distinct status so clients can show a precise message.
func RespondError(c *gin.Context, err error) {
	message := apperrors.UserMessage(err)
	switch {
	case apperrors.IsKind(err, apperrors.KindValidation):
		responses.BadRequest(c, message)
	case apperrors.IsKind(err, apperrors.KindNotFound):
		responses.NotFound(c, message)
	case apperrors.IsKind(err, apperrors.KindConflict), apperrors.IsKind(err, apperrors.KindNotRunning):
		responses.Conflict(c, message)
	default:
		responses.InternalError(c, message)
	}
}
