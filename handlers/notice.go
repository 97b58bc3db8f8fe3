package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"
)

// Notice is the fire-and-forget feedback message attached to mutating
// responses; the client surfaces it as a toast/snackbar.
type Notice struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// noticeResponse wraps a payload together with a notice.
type noticeResponse struct {
	Notice Notice `json:"notice"`
	Data   any    `json:"data,omitempty"`
}

// OKNotice writes a 200 response carrying a success notice and an
// optional payload.
func OKNotice(e *core.RequestEvent, noticeType, message string, data any) error {
	return e.JSON(http.StatusOK, noticeResponse{
		Notice: Notice{Type: noticeType, Message: message},
		Data:   data,
	})
}

// ErrorNotice writes an error response carrying an error notice. The
// form stays editable client-side; nothing here is fatal.
func ErrorNotice(e *core.RequestEvent, statusCode int, message string) error {
	return e.JSON(statusCode, noticeResponse{
		Notice: Notice{Type: "error", Message: message},
	})
}
