package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/tanmay-mevada/DStrA-sub001/pkg/response"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/xerrors"
)

// decodeJSON unmarshals the request body into dst, writing a 400 itself on
// failure. Returns false when the handler should bail out.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// writeErr maps domain sentinels onto HTTP statuses. Anything unmapped is an
// internal fault: logged in full, reported generically.
func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, xerrors.ErrUserNotFound),
		errors.Is(err, xerrors.ErrNotFound):
		response.Error(w, http.StatusNotFound, err.Error())

	case errors.Is(err, xerrors.ErrUserAlreadyExists),
		errors.Is(err, xerrors.ErrEmailAlreadyInUse),
		errors.Is(err, xerrors.ErrAlreadyVerified):
		response.Error(w, http.StatusConflict, err.Error())

	case errors.Is(err, xerrors.ErrInvalidOrExpiredOTP),
		errors.Is(err, xerrors.ErrInvalidOrExpiredToken),
		errors.Is(err, xerrors.ErrEmailRequired),
		errors.Is(err, xerrors.ErrPasswordRequired),
		errors.Is(err, xerrors.ErrInvalidEmailFormat),
		errors.Is(err, xerrors.ErrPasswordTooShort),
		errors.Is(err, xerrors.ErrPasswordTooLong),
		errors.Is(err, xerrors.ErrUnsupportedLanguage),
		errors.Is(err, xerrors.ErrInvalidRequest):
		response.Error(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, xerrors.ErrInvalidCredentials),
		errors.Is(err, xerrors.ErrInvalidIDToken),
		errors.Is(err, xerrors.ErrInvalidToken),
		errors.Is(err, xerrors.ErrSessionNotFound),
		errors.Is(err, xerrors.ErrUnauthorized):
		response.Error(w, http.StatusUnauthorized, err.Error())

	case errors.Is(err, xerrors.ErrEmailNotVerified),
		errors.Is(err, xerrors.ErrForbidden):
		response.Error(w, http.StatusForbidden, err.Error())

	case errors.Is(err, xerrors.ErrTooManyOTPRequests):
		response.Error(w, http.StatusTooManyRequests, err.Error())

	case errors.Is(err, xerrors.ErrJudgeUnavailable):
		response.Error(w, http.StatusBadGateway, err.Error())

	case errors.Is(err, xerrors.ErrNotificationFailed):
		response.Error(w, http.StatusInternalServerError, "failed to send email, please try again")

	default:
		log.Printf("[HTTP] unhandled error: %v", err)
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
