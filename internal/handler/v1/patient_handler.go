package v1

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medagenda/medagenda/internal/domain/patient"
	"github.com/medagenda/medagenda/internal/service"
	"github.com/medagenda/medagenda/pkg/timeutil"
)

type PatientHandler struct {
	patients *service.PatientService
}

func NewPatientHandler(patients *service.PatientService) *PatientHandler {
	return &PatientHandler{patients: patients}
}

func (h *PatientHandler) List(c *gin.Context) {
	claims := currentClaims(c)

	list, err := h.patients.ListPatients(c.Request.Context(), claims.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, list)
}

func (h *PatientHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.patients.GetPatient(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}

type createPatientRequest struct {
	DNI       string `json:"dni" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birth_date"`
}

func (h *PatientHandler) Create(c *gin.Context) {
	var req createPatientRequest
	if !bindJSON(c, &req) {
		return
	}
	claims := currentClaims(c)

	var birthDate *time.Time
	if req.BirthDate != "" {
		bd, err := timeutil.ParseDate(req.BirthDate)
		if err != nil {
			respondError(c, 400, "birth_date must be YYYY-MM-DD")
			return
		}
		birthDate = &bd
	}

	p, err := h.patients.CreatePatient(c.Request.Context(), &patient.CreatePatientCommand{
		DNI:             req.DNI,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		BirthDate:       birthDate,
		CreatedByUserID: &claims.UserID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, p)
}

type updatePatientRequest struct {
	DNI       *string `json:"dni"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	BirthDate *string `json:"birth_date"`
}

func (h *PatientHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var req updatePatientRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := &patient.UpdatePatientCommand{
		DNI:       req.DNI,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	if req.BirthDate != nil {
		bd, err := timeutil.ParseDate(*req.BirthDate)
		if err != nil {
			respondError(c, 400, "birth_date must be YYYY-MM-DD")
			return
		}
		cmd.BirthDate = &bd
	}

	p, err := h.patients.UpdatePatient(c.Request.Context(), id, cmd)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}

// Purge hard-deletes a patient and everything tied to them. Admin only.
func (h *PatientHandler) Purge(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.patients.PurgePatient(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"purged": id})
}
