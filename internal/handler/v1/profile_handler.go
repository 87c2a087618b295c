package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/medagenda/medagenda/internal/domain"
	"github.com/medagenda/medagenda/internal/service"
)

// ProfileHandler serves the authenticated user's own account and, for
// professionals, the public-facing profile they expose to patients.
type ProfileHandler struct {
	profiles *service.ProfileService
}

func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type userProfileResponse struct {
	ID       string `json:"id"`
	DNI      string `json:"dni"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

func toUserProfileResponse(u *domain.User) userProfileResponse {
	return userProfileResponse{
		ID:       u.ID.String(),
		DNI:      u.DNI,
		Email:    u.Email,
		FullName: u.FullName,
		Phone:    u.Phone,
		Role:     string(u.Role),
		IsActive: u.IsActive,
	}
}

func (h *ProfileHandler) GetMe(c *gin.Context) {
	claims := currentClaims(c)

	u, err := h.profiles.GetMe(c.Request.Context(), claims.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toUserProfileResponse(u))
}

type updateMeRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone"`
}

func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	var req updateMeRequest
	if !bindJSON(c, &req) {
		return
	}
	claims := currentClaims(c)

	u, err := h.profiles.UpdateMe(c.Request.Context(), claims.UserID, service.UpdateProfileInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toUserProfileResponse(u))
}

type professionalProfileResponse struct {
	UserID        string `json:"user_id"`
	Specialty     string `json:"specialty"`
	Description   string `json:"description"`
	LicenseNumber string `json:"license_number,omitempty"`
}

func toProfessionalProfileResponse(p *domain.ProfessionalProfile) professionalProfileResponse {
	return professionalProfileResponse{
		UserID:        p.UserID.String(),
		Specialty:     p.Specialty,
		Description:   p.Description,
		LicenseNumber: p.LicenseNumber,
	}
}

func (h *ProfileHandler) GetProfessionalProfile(c *gin.Context) {
	claims := currentClaims(c)

	p, err := h.profiles.GetProfessionalProfile(c.Request.Context(), claims.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toProfessionalProfileResponse(p))
}

type updateProfessionalProfileRequest struct {
	Specialty     string `json:"specialty" binding:"required"`
	Description   string `json:"description"`
	LicenseNumber string `json:"license_number"`
}

func (h *ProfileHandler) UpdateProfessionalProfile(c *gin.Context) {
	var req updateProfessionalProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	claims := currentClaims(c)

	p, err := h.profiles.UpdateProfessionalProfile(c.Request.Context(), claims.UserID, service.UpdateProfessionalProfileInput{
		Specialty:     req.Specialty,
		Description:   req.Description,
		LicenseNumber: req.LicenseNumber,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toProfessionalProfileResponse(p))
}
