package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/medagenda/medagenda/internal/service"
)

type AdminHandler struct {
	admin *service.AdminService
}

func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

type adminUserResponse struct {
	ID          string `json:"id"`
	DNI         string `json:"dni"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	Role        string `json:"role"`
	IsActive    bool   `json:"is_active"`
	LastLoginAt string `json:"last_login_at,omitempty"`
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.admin.ListUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]adminUserResponse, 0, len(users))
	for _, u := range users {
		resp := adminUserResponse{
			ID:       u.ID.String(),
			DNI:      u.DNI,
			Email:    u.Email,
			FullName: u.FullName,
			Role:     string(u.Role),
			IsActive: u.IsActive,
		}
		if u.LastLoginAt != nil {
			resp.LastLoginAt = u.LastLoginAt.Format("2006-01-02T15:04:05Z07:00")
		}
		out = append(out, resp)
	}
	respondOK(c, out)
}

type createUserRequest struct {
	DNI           string `json:"dni" binding:"required"`
	Email         string `json:"email" binding:"required"`
	Password      string `json:"password" binding:"required"`
	FullName      string `json:"full_name" binding:"required"`
	Role          string `json:"role" binding:"required"`
	Specialty     string `json:"specialty"`
	Description   string `json:"description"`
	LicenseNumber string `json:"license_number"`
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.admin.CreateUser(c.Request.Context(), service.CreateUserInput{
		DNI:           req.DNI,
		Email:         req.Email,
		Password:      req.Password,
		FullName:      req.FullName,
		Role:          req.Role,
		Specialty:     req.Specialty,
		Description:   req.Description,
		LicenseNumber: req.LicenseNumber,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, adminUserResponse{
		ID:       user.ID.String(),
		DNI:      user.DNI,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     string(user.Role),
		IsActive: user.IsActive,
	})
}

type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func (h *AdminHandler) SetUserActive(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var req setActiveRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.admin.SetUserActive(c.Request.Context(), id, *req.Active); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id, "active": *req.Active})
}

type resetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required"`
}

func (h *AdminHandler) ResetPassword(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var req resetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.admin.ResetPassword(c.Request.Context(), id, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"reset": true})
}
