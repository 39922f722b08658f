package response

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"glin-wallet/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// Envelope types.
const (
	TypeResponse = "RESPONSE"
	TypeError    = "ERROR"
)

// Message is the response envelope every request receives exactly once.
type Message struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	RequestID string      `json:"requestId"`
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Code      string      `json:"code,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

var counter atomic.Uint64

// NextID returns a process-unique message id of the form msg_<unixMillis>_<n>.
func NextID() string {
	return fmt.Sprintf("msg_%d_%d", time.Now().UnixMilli(), counter.Add(1))
}

// Success builds a RESPONSE envelope for requestID.
func Success(requestID string, data interface{}) Message {
	return Message{
		ID:        NextID(),
		Type:      TypeResponse,
		RequestID: requestID,
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	}
}

// Failure builds an ERROR envelope. AppErrors contribute their public
// message and code; anything else is reported as a generic internal error.
func Failure(requestID string, err error) Message {
	msg := Message{
		ID:        NextID(),
		Type:      TypeError,
		RequestID: requestID,
		Success:   false,
		Timestamp: time.Now().UnixMilli(),
	}
	if appErr, ok := apperror.As(err); ok {
		msg.Error = appErr.Message
		msg.Code = appErr.Code
		return msg
	}
	msg.Error = "Internal error"
	msg.Code = "SYS_000"
	return msg
}

// OK writes a RESPONSE envelope.
func OK(c *gin.Context, requestID string, data interface{}) {
	c.JSON(http.StatusOK, Success(requestID, data))
}

// Error writes an ERROR envelope with the status carried by the AppError.
func Error(c *gin.Context, requestID string, err error) {
	status := http.StatusInternalServerError
	if appErr, ok := apperror.As(err); ok {
		status = appErr.HTTPStatus
	}
	c.JSON(status, Failure(requestID, err))
}

// AbortWithError writes an ERROR envelope and stops the handler chain.
func AbortWithError(c *gin.Context, requestID string, err error) {
	Error(c, requestID, err)
	c.Abort()
}
