package response

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform shape of every API response, success or failure.
type Envelope struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message,omitempty"`
	Data     any       `json:"data,omitempty"`
	Metadata *Metadata `json:"metadata,omitempty"`
	Error    string    `json:"error,omitempty"`
	Details  any       `json:"details,omitempty"`
	Stack    string    `json:"stack,omitempty"`
}

// Metadata carries paging information for list responses.
type Metadata struct {
	TotalElements int64 `json:"total_elements"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

func OKMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message})
}

func List(c *gin.Context, items any, total int64) {
	// An empty page must serialize as [], not null; a nil slice would
	// otherwise reach clients as "data":null.
	if v := reflect.ValueOf(items); v.Kind() == reflect.Slice && v.IsNil() {
		items = []any{}
	}
	c.JSON(http.StatusOK, Envelope{
		Success:  true,
		Data:     items,
		Metadata: &Metadata{TotalElements: total},
	})
}
