package http

import (
	"errors"
	"net/http"
	"strings"

	"fulfillment/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// requestError marks a body or parameter that could not be decoded.
type requestError struct {
	msg string
}

func (e *requestError) Error() string { return e.msg }

func invalidRequest(msg string) error {
	return &requestError{msg: msg}
}

// statusFor maps domain failures onto HTTP status codes.
func statusFor(err error) int {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrDuplicateOperation):
		return http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errs.IsValidation(err), errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c echo.Context, err error) error {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		msg = http.StatusText(code)
	}
	return c.JSON(code, Error{Code: code, Message: msg})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: msg})
}

// bind decodes and validates a request body.
func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return invalidRequest("invalid request body")
	}
	if err := c.Validate(dst); err != nil {
		return invalidRequest(validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Namespace()+" failed on "+fe.Tag())
	}
	return "invalid request: " + strings.Join(fields, "; ")
}

// structValidator plugs validator/v10 into echo.
type structValidator struct {
	validate *validator.Validate
}

func newStructValidator() *structValidator {
	return &structValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *structValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
