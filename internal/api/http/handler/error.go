package handler

import (
	"net/http"

	"github.com/dtroode/gophnotes-server/internal/apierrors"
	"github.com/dtroode/gophnotes-server/internal/logger"
)

// WriteError writes err as a {success:false,message} body. Errors that are not
// an *apierrors.APIError are reported as 500 with fallback as the message.
func WriteError(w http.ResponseWriter, err error, fallback string) {
	apiErr, ok := apierrors.As(err)
	if !ok {
		apiErr = apierrors.NewErrInternalServerError(fallback, err)
	}

	writeJSON(w, apiErr.HTTPCode, MessageResponse{Success: false, Message: apiErr.Message})
}

func handleError(w http.ResponseWriter, log *logger.Logger, op string, err error, fallback string) {
	if apiErr, ok := apierrors.As(err); ok && !apierrors.IsKind(err, apierrors.KindUnexpected) {
		log.Debug(op+" rejected",
			"kind", apiErr.Kind,
			"message", apiErr.Message)
	} else {
		log.Error(op+" failed",
			"error", err.Error())
	}

	WriteError(w, err, fallback)
}
