package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"campaign-draft-sync-go/internal/engine"
	"campaign-draft-sync-go/internal/store"

	"go.uber.org/zap"
)

type apiError struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeSuccess(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, map[string]any{
		"status": "success",
		"data":   data,
	})
}

func writeMessage(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]any{
		"status":  "success",
		"message": message,
	})
}

func writeError(w http.ResponseWriter, statusCode int, code, message string) {
	writeJSON(w, statusCode, apiError{
		Status:  "error",
		Code:    code,
		Message: message,
	})
}

// writeMappedError turns an engine error into a status code. Remote failures
// keep their message so the caller sees why the save did not go through.
func writeMappedError(w http.ResponseWriter, operation string, err error) {
	status, code, msg := mapEngineError(err)
	if status >= http.StatusInternalServerError {
		zap.L().Error("Request failed", zap.String("operation", operation), zap.Error(err))
	} else {
		zap.L().Info("Request rejected",
			zap.String("operation", operation),
			zap.String("code", code),
			zap.Error(err))
	}
	writeError(w, status, code, msg)
}

func mapEngineError(err error) (int, string, string) {
	var (
		vErr *engine.ValidationError
		cErr *engine.ConflictError
		rErr *engine.RemoteStoreError
	)
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest, "VALIDATION_ERROR", vErr.Error()
	case errors.As(err, &cErr):
		return http.StatusConflict, "CONFLICT", cErr.Error()
	case errors.Is(err, store.ErrCampaignNotFound):
		return http.StatusNotFound, "NOT_FOUND", "campaign not found"
	case errors.Is(err, store.ErrInvalidFlags):
		return http.StatusBadRequest, "INVALID_FLAGS", store.ErrInvalidFlags.Error()
	case errors.Is(err, store.ErrInvalidOwnerId):
		return http.StatusBadRequest, "INVALID_OWNER", store.ErrInvalidOwnerId.Error()
	case errors.As(err, &rErr):
		return http.StatusBadGateway, "REMOTE_STORE_ERROR", rErr.Error()
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"
	}
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain a single JSON value")
	}
	return nil
}

// parseIntParam reads an optional integer query parameter
func parseIntParam(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &engine.ValidationError{Field: name, Reason: "must be an integer"}
	}
	return n, nil
}
