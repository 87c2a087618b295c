package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medagenda/medagenda/internal/domain"
	"github.com/medagenda/medagenda/internal/domain/appointment"
	"github.com/medagenda/medagenda/internal/domain/catalog"
	"github.com/medagenda/medagenda/internal/domain/clinical"
	"github.com/medagenda/medagenda/internal/domain/patient"
	"github.com/medagenda/medagenda/internal/domain/schedule"
	"github.com/medagenda/medagenda/internal/service"
	"github.com/medagenda/medagenda/pkg/auth"
)

type APIResponse[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type ValidationErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse[any]{Data: data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, APIResponse[any]{Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// respondServiceError is the single place service errors become HTTP
// status codes.
func respondServiceError(c *gin.Context, err error) {
	var validErr *service.ValidationError
	if errors.As(err, &validErr) {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:  "validation failed",
			Fields: validErr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, appointment.ErrSlotTaken):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error: "the selected slot is no longer available",
			Code:  "SLOT_TAKEN",
		})

	case errors.Is(err, patient.ErrPatientAlreadyExists),
		errors.Is(err, schedule.ErrRuleExists),
		errors.Is(err, catalog.ErrEntryExists),
		errors.Is(err, domain.ErrUserExists):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})

	case errors.Is(err, appointment.ErrAppointmentNotFound),
		errors.Is(err, patient.ErrPatientNotFound),
		errors.Is(err, schedule.ErrRuleNotFound),
		errors.Is(err, schedule.ErrBlockNotFound),
		errors.Is(err, clinical.ErrRecordNotFound),
		errors.Is(err, catalog.ErrEntryNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	case errors.Is(err, appointment.ErrInvalidStatus),
		errors.Is(err, appointment.ErrDateTimeRequired),
		errors.Is(err, schedule.ErrInvalidRule),
		errors.Is(err, schedule.ErrInvalidBlock),
		errors.Is(err, catalog.ErrNameRequired),
		errors.Is(err, patient.ErrDNIRequired):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})

	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "access denied"})

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrTokenInvalid),
		errors.Is(err, auth.ErrTokenTypeMismatch):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})

	case errors.Is(err, service.ErrAccountDisabled):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error: "account is disabled",
			Code:  "ACCOUNT_DISABLED",
		})

	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return false
	}
	return true
}

func parseUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	raw := c.Param(param)
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + param + ": must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}

// currentClaims returns the authenticated claims stored by the auth
// middleware.
func currentClaims(c *gin.Context) *domain.Claims {
	v, ok := c.Get(claimsContextKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*domain.Claims)
	return claims
}
