package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/todoapp/todoapp/config"
	"github.com/todoapp/todoapp/logger"
	"github.com/todoapp/todoapp/web/entity"
	"github.com/todoapp/todoapp/web/service"
)

// statusFor maps the service error taxonomy to an HTTP status.
func statusFor(err error) int {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrUnauthenticated),
		errors.Is(err, service.ErrBadCredentials),
		errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// jsonError writes err as an ErrorResponse with the mapped status.
func jsonError(c *gin.Context, err error) {
	status := statusFor(err)
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(status, entity.ErrorResponse{Detail: verr.Fields})
	case status == http.StatusInternalServerError:
		logger.Warningf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.AbortWithStatusJSON(status, entity.ErrorResponse{Detail: "internal server error"})
	default:
		c.AbortWithStatusJSON(status, entity.ErrorResponse{Detail: err.Error()})
	}
}

// bindError turns a gin binding failure into a 422 response.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]service.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, service.FieldError{Field: fe.Field(), Msg: "failed on " + fe.Tag()})
		}
		jsonError(c, &service.ValidationError{Fields: fields})
		return
	}
	jsonError(c, &service.ValidationError{Fields: []service.FieldError{{Field: "body", Msg: err.Error()}}})
}

// bindID reads the positive {id} path parameter. On failure the 422 response
// is already written.
func bindID(c *gin.Context) (int, bool) {
	var p entity.IDParam
	if err := c.ShouldBindUri(&p); err != nil {
		jsonError(c, &service.ValidationError{Fields: []service.FieldError{{Field: "id", Msg: "should be an integer greater than 0"}}})
		return 0, false
	}
	return p.ID, true
}

// apiPanic answers a request whose handler panicked.
func apiPanic(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, entity.ErrorResponse{Detail: "internal server error"})
}

// html renders a template with the data every page needs.
func html(c *gin.Context, name string, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["title"] = title
	data["request_uri"] = c.Request.RequestURI
	c.HTML(http.StatusOK, name, getContext(data))
}

func getContext(h gin.H) gin.H {
	a := gin.H{
		"app_name": config.GetName(),
		"cur_ver":  config.GetVersion(),
	}
	for key, value := range h {
		a[key] = value
	}
	return a
}
