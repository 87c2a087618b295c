package v1

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medagenda/medagenda/internal/domain/appointment"
	"github.com/medagenda/medagenda/internal/domain/patient"
	"github.com/medagenda/medagenda/internal/service"
	"github.com/medagenda/medagenda/pkg/timeutil"
)

// PublicHandler serves the unauthenticated booking flow: listing
// professionals, querying availability, pre-filling patient data by
// DNI, and booking a slot.
type PublicHandler struct {
	directory    *service.DirectoryService
	availability *service.AvailabilityService
	patients     *service.PatientService
	booking      *service.BookingService
}

func NewPublicHandler(
	directory *service.DirectoryService,
	availability *service.AvailabilityService,
	patients *service.PatientService,
	booking *service.BookingService,
) *PublicHandler {
	return &PublicHandler{
		directory:    directory,
		availability: availability,
		patients:     patients,
		booking:      booking,
	}
}

func (h *PublicHandler) ListProfessionals(c *gin.Context) {
	pros, err := h.directory.ListProfessionals(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, pros)
}

// GetAvailability returns the bookable "HH:MM" starts for
// ?professional_id=...&date=YYYY-MM-DD.
func (h *PublicHandler) GetAvailability(c *gin.Context) {
	professionalID, ok := parseUUID(c, "professionalID")
	if !ok {
		return
	}

	slots, err := h.availability.GetDayAvailability(c.Request.Context(), professionalID, c.Query("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"date": c.Query("date"), "slots": slots})
}

// LookupPatient pre-fills the booking form for returning patients.
func (h *PublicHandler) LookupPatient(c *gin.Context) {
	p, err := h.patients.LookupByDNI(c.Request.Context(), c.Query("dni"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{
		"dni":        p.DNI,
		"first_name": p.FirstName,
		"last_name":  p.LastName,
		"email":      p.Email,
		"phone":      p.Phone,
	})
}

type bookingPatientRequest struct {
	DNI       string `json:"dni" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birth_date"`
}

type bookingRequest struct {
	ProfessionalID string                `json:"professional_id" binding:"required"`
	Date           string                `json:"date" binding:"required"`
	Time           string                `json:"time" binding:"required"`
	Patient        bookingPatientRequest `json:"patient" binding:"required"`
	ReasonForVisit string                `json:"reason_for_visit"`
}

func (h *PublicHandler) BookAppointment(c *gin.Context) {
	var req bookingRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd, err := req.toCommand()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	conf, err := h.booking.BookPublicAppointment(c.Request.Context(), cmd)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, conf)
}

func (r *bookingRequest) toCommand() (*appointment.PublicBookingCommand, error) {
	var fields []string

	professionalID, err := parseUUIDString(r.ProfessionalID)
	if err != nil {
		fields = append(fields, "professional_id must be a valid UUID")
	}

	dateTime, err := parseSlotDateTime(r.Date, r.Time)
	if err != nil {
		fields = append(fields, "date must be YYYY-MM-DD and time must be HH:MM")
	}

	var birthDate *time.Time
	if r.Patient.BirthDate != "" {
		bd, err := timeutil.ParseDate(r.Patient.BirthDate)
		if err != nil {
			fields = append(fields, "birth_date must be YYYY-MM-DD")
		} else {
			birthDate = &bd
		}
	}

	if len(fields) > 0 {
		return nil, &service.ValidationError{Fields: fields}
	}

	return &appointment.PublicBookingCommand{
		ProfessionalUserID: professionalID,
		DateTime:           dateTime,
		Patient: patient.Identity{
			DNI:       r.Patient.DNI,
			FirstName: r.Patient.FirstName,
			LastName:  r.Patient.LastName,
			Email:     r.Patient.Email,
			Phone:     r.Patient.Phone,
			BirthDate: birthDate,
		},
		ReasonForVisit: r.ReasonForVisit,
	}, nil
}
