package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medagenda/medagenda/internal/domain/clinical"
	"github.com/medagenda/medagenda/internal/service"
)

type ClinicalHandler struct {
	records *service.ClinicalService
}

func NewClinicalHandler(records *service.ClinicalService) *ClinicalHandler {
	return &ClinicalHandler{records: records}
}

type createRecordRequest struct {
	PatientID     string                  `json:"patient_id" binding:"required"`
	AppointmentID string                  `json:"appointment_id"`
	Pathology     string                  `json:"pathology"`
	Anthropometry *clinical.Anthropometry `json:"anthropometry"`
	Diagnosis     string                  `json:"diagnosis"`
	Treatment     string                  `json:"treatment"`
	Notes         string                  `json:"notes"`
}

func (h *ClinicalHandler) Create(c *gin.Context) {
	var req createRecordRequest
	if !bindJSON(c, &req) {
		return
	}
	claims := currentClaims(c)

	patientID, err := parseUUIDString(req.PatientID)
	if err != nil {
		respondError(c, 400, "patient_id must be a valid UUID")
		return
	}
	var appointmentID *uuid.UUID
	if req.AppointmentID != "" {
		id, err := parseUUIDString(req.AppointmentID)
		if err != nil {
			respondError(c, 400, "appointment_id must be a valid UUID")
			return
		}
		appointmentID = &id
	}

	rec, err := h.records.CreateRecord(c.Request.Context(), &clinical.CreateRecordCommand{
		PatientID:          patientID,
		ProfessionalUserID: claims.UserID,
		AppointmentID:      appointmentID,
		Pathology:          req.Pathology,
		Anthropometry:      req.Anthropometry,
		Diagnosis:          req.Diagnosis,
		Treatment:          req.Treatment,
		Notes:              req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, rec)
}

func (h *ClinicalHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	claims := currentClaims(c)

	rec, err := h.records.GetRecord(c.Request.Context(), claims.UserID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, rec)
}

func (h *ClinicalHandler) ListByPatient(c *gin.Context) {
	patientID, ok := parseUUID(c, "patientID")
	if !ok {
		return
	}
	claims := currentClaims(c)

	recs, err := h.records.ListPatientRecords(c.Request.Context(), claims.UserID, patientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, recs)
}

type updateRecordRequest struct {
	Pathology     *string                 `json:"pathology"`
	Anthropometry *clinical.Anthropometry `json:"anthropometry"`
	Diagnosis     *string                 `json:"diagnosis"`
	Treatment     *string                 `json:"treatment"`
	Notes         *string                 `json:"notes"`
}

func (h *ClinicalHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var req updateRecordRequest
	if !bindJSON(c, &req) {
		return
	}
	claims := currentClaims(c)

	rec, err := h.records.UpdateRecord(c.Request.Context(), claims.UserID, id, &clinical.UpdateRecordCommand{
		Pathology:     req.Pathology,
		Anthropometry: req.Anthropometry,
		Diagnosis:     req.Diagnosis,
		Treatment:     req.Treatment,
		Notes:         req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, rec)
}

func (h *ClinicalHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	claims := currentClaims(c)

	if err := h.records.DeleteRecord(c.Request.Context(), claims.UserID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": id})
}
