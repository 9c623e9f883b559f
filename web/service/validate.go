package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/todoapp/todoapp/database/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// TodoDraft is the unvalidated payload of a create or update request.
type TodoDraft struct {
	Title       string `json:"title" form:"title" validate:"required,min=3"`
	Description string `json:"description" form:"description" validate:"required,min=3,max=100"`
	Priority    int    `json:"priority" form:"priority" validate:"gt=0,lt=6"`
	Complete    *bool  `json:"complete" form:"complete" validate:"required"`
}

// Validate checks the draft's field constraints.
func (d *TodoDraft) Validate() error {
	return validateStruct(d)
}

func (d *TodoDraft) apply(todo *model.Todo) {
	todo.Title = d.Title
	todo.Description = d.Description
	todo.Priority = d.Priority
	todo.Complete = *d.Complete
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Msg: describe(fe)})
	}
	return out
}

func describe(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "field required"
	case "min":
		if isString {
			return fmt.Sprintf("should have at least %s characters", fe.Param())
		}
		return "should be greater than or equal to " + fe.Param()
	case "max":
		if isString {
			return fmt.Sprintf("should have at most %s characters", fe.Param())
		}
		return "should be less than or equal to " + fe.Param()
	case "gt":
		return "should be greater than " + fe.Param()
	case "lt":
		return "should be less than " + fe.Param()
	case "email":
		return "value is not a valid email address"
	}
	return "failed on " + fe.Tag()
}

func validateID(id int) error {
	if id <= 0 {
		return newValidationError("id", "should be greater than 0")
	}
	return nil
}
