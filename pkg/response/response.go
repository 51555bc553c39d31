package response

import (
	"errors"
	"net/http"

	"github.com/familyboard/familyboard/internal/record"
	"github.com/familyboard/familyboard/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Messages shown to visitors by the front end.
const (
	MsgFieldsRequired = "Все поля обязательны"
	MsgInvalidBody    = "Некорректный запрос"
	MsgNotFound       = "Не найдено"
	MsgInternal       = "Внутренняя ошибка сервера"
)

// OK writes a success envelope: {success:true, ...fields}.
func OK(c *gin.Context, fields gin.H) {
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Fail writes {success:false, error:msg} with the given status.
func Fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// Error maps err onto the failure envelope. Validation errors become 400,
// unknown ids 404; everything else is logged and reported as 500 with the
// caller-supplied message.
func Error(c *gin.Context, err error, notFoundMsg, serverMsg string) {
	var verr *record.ValidationError
	var nerr *record.NotFoundError
	switch {
	case errors.As(err, &verr):
		Fail(c, http.StatusBadRequest, MsgFieldsRequired)
	case errors.As(err, &nerr):
		if notFoundMsg == "" {
			notFoundMsg = MsgNotFound
		}
		Fail(c, http.StatusNotFound, notFoundMsg)
	default:
		logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		if serverMsg == "" {
			serverMsg = MsgInternal
		}
		Fail(c, http.StatusInternalServerError, serverMsg)
	}
}
