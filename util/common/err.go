// Package common holds small error helpers shared across todoapp.
package common

import (
	"errors"

	"github.com/todoapp/todoapp/logger"
)

// Combine joins the non-nil errors, returning nil if there are none.
func Combine(errs ...error) error {
	return errors.Join(errs...)
}

// Recover logs a recovered panic with msg. Use it as `defer common.Recover(msg)`.
func Recover(msg string) any {
	panicErr := recover()
	if panicErr != nil && msg != "" {
		logger.Error(msg, "panic:", panicErr)
	}
	return panicErr
}
