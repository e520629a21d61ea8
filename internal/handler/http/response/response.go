package response

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
)

// Response is the JSON envelope of every API answer.
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Error codes carried in ErrorDetail.Code
const (
	CodeBadRequest   = "BAD_REQUEST"
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_SERVER_ERROR"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload Response) {
	raw, err := json.Marshal(payload)
	if err != nil {
		slog.Error("response encode error", "error", err)
		statusCode = http.StatusInternalServerError
		raw, _ = json.Marshal(Response{Error: &ErrorDetail{Code: CodeInternal, Message: "Failed to encode response"}})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(append(raw, '\n'))
}

func fail(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	writeJSON(w, statusCode, Response{
		Error: &ErrorDetail{Code: code, Message: message, Details: details},
	})
}

func Success(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

func SuccessWithMessage(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func Created(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

// Attachment streams a generated document as a download.
func Attachment(w http.ResponseWriter, contentType, fileName string, content []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content); err != nil {
		slog.Error("attachment write error", "file", fileName, "error", err)
	}
}

func BadRequest(w http.ResponseWriter, message string, details map[string]string) {
	fail(w, http.StatusBadRequest, CodeBadRequest, message, details)
}

// ValidationError answers 400 with the offending fields in details.
func ValidationError(w http.ResponseWriter, details map[string]string) {
	fail(w, http.StatusBadRequest, CodeValidation, "Validation failed", details)
}

func Unauthorized(w http.ResponseWriter, message string) {
	fail(w, http.StatusUnauthorized, CodeUnauthorized, message, nil)
}

func Forbidden(w http.ResponseWriter, message string) {
	fail(w, http.StatusForbidden, CodeForbidden, message, nil)
}

func NotFound(w http.ResponseWriter, message string) {
	fail(w, http.StatusNotFound, CodeNotFound, message, nil)
}

func Conflict(w http.ResponseWriter, message string) {
	fail(w, http.StatusConflict, CodeConflict, message, nil)
}

func InternalServerError(w http.ResponseWriter, message string) {
	fail(w, http.StatusInternalServerError, CodeInternal, message, nil)
}
