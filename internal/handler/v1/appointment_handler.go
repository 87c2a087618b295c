package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/medagenda/medagenda/internal/domain/appointment"
	"github.com/medagenda/medagenda/internal/service"
	"github.com/medagenda/medagenda/pkg/timeutil"
)

// AppointmentHandler covers the authenticated professional's agenda.
type AppointmentHandler struct {
	booking *service.BookingService
}

func NewAppointmentHandler(booking *service.BookingService) *AppointmentHandler {
	return &AppointmentHandler{booking: booking}
}

func (h *AppointmentHandler) List(c *gin.Context) {
	claims := currentClaims(c)

	q := &appointment.ListQuery{
		ProfessionalUserID: claims.UserID,
		PatientDNI:         c.Query("patient_dni"),
	}
	if raw := c.Query("from"); raw != "" {
		from, err := timeutil.ParseDate(raw)
		if err != nil {
			respondError(c, 400, "from must be YYYY-MM-DD")
			return
		}
		start, _ := timeutil.DayBounds(from)
		q.From = &start
	}
	if raw := c.Query("to"); raw != "" {
		to, err := timeutil.ParseDate(raw)
		if err != nil {
			respondError(c, 400, "to must be YYYY-MM-DD")
			return
		}
		_, end := timeutil.DayBounds(to)
		q.To = &end
	}

	appts, err := h.booking.ListAppointments(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, appts)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	claims := currentClaims(c)

	appt, err := h.booking.GetAppointment(c.Request.Context(), claims.UserID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, appt)
}

type manualCreateRequest struct {
	PatientID      string `json:"patient_id" binding:"required"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`
	ReasonForVisit string `json:"reason_for_visit"`
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req manualCreateRequest
	if !bindJSON(c, &req) {
		return
	}
	claims := currentClaims(c)

	patientID, err := parseUUIDString(req.PatientID)
	if err != nil {
		respondError(c, 400, "patient_id must be a valid UUID")
		return
	}
	dateTime, err := parseSlotDateTime(req.Date, req.Time)
	if err != nil {
		respondError(c, 400, "date must be YYYY-MM-DD and time must be HH:MM")
		return
	}

	appt, err := h.booking.CreateManualAppointment(c.Request.Context(), &appointment.ManualCreateCommand{
		ProfessionalUserID: claims.UserID,
		PatientID:          patientID,
		DateTime:           dateTime,
		ReasonForVisit:     req.ReasonForVisit,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, appt)
}

type reprogramRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

func (h *AppointmentHandler) Reprogram(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var req reprogramRequest
	if !bindJSON(c, &req) {
		return
	}
	claims := currentClaims(c)

	newDateTime, err := parseSlotDateTime(req.Date, req.Time)
	if err != nil {
		respondError(c, 400, "date must be YYYY-MM-DD and time must be HH:MM")
		return
	}

	appt, err := h.booking.Reprogram(c.Request.Context(), claims.UserID, id, newDateTime)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, appt)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var req updateStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	claims := currentClaims(c)

	appt, err := h.booking.UpdateStatus(c.Request.Context(), claims.UserID, id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, appt)
}

type updateNotesRequest struct {
	ProfessionalNotes *string `json:"professional_notes"`
	PatientNotes      *string `json:"patient_notes"`
}

func (h *AppointmentHandler) UpdateNotes(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var req updateNotesRequest
	if !bindJSON(c, &req) {
		return
	}
	claims := currentClaims(c)

	appt, err := h.booking.UpdateNotes(c.Request.Context(), claims.UserID, id, &appointment.UpdateNotesCommand{
		ProfessionalNotes: req.ProfessionalNotes,
		PatientNotes:      req.PatientNotes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, appt)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	claims := currentClaims(c)

	if err := h.booking.DeleteAppointment(c.Request.Context(), claims.UserID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": id})
}
