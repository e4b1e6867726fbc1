package helper

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "sqlstate 23505")
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// Sentinels services wrap with fmt.Errorf("%w: ...") so controllers can map them.
var (
	ErrInvalidInput = errors.New("Invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrLimitReached = errors.New("limit reached")
)

// StatusFor maps a service error to an HTTP status.
func StatusFor(err error) int {
	var fe *fiber.Error
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrLimitReached):
		return fiber.StatusForbidden
	case errors.Is(err, ErrNotFound), IsNotFound(err):
		return fiber.StatusNotFound
	case errors.Is(err, ErrConflict), IsUniqueViolation(err):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// JsonFromError writes the envelope for err. 5xx details stay in the log.
func JsonFromError(c *fiber.Ctx, err error) error {
	status := StatusFor(err)
	if status >= 500 {
		log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
		return JsonError(c, status, "")
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, status, fe.Message)
	}
	if IsNotFound(err) {
		return JsonError(c, status, "Not found")
	}
	if IsUniqueViolation(err) {
		return JsonError(c, status, "Already exists")
	}
	return JsonError(c, status, err.Error())
}
