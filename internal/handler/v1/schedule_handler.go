package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/medagenda/medagenda/internal/service"
)

// ScheduleHandler lets a professional manage their weekly rules and
// time blocks, and preview their own availability.
type ScheduleHandler struct {
	availability *service.AvailabilityService
}

func NewScheduleHandler(availability *service.AvailabilityService) *ScheduleHandler {
	return &ScheduleHandler{availability: availability}
}

func (h *ScheduleHandler) GetOwnAvailability(c *gin.Context) {
	claims := currentClaims(c)

	slots, err := h.availability.GetDayAvailability(c.Request.Context(), claims.UserID, c.Query("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"date": c.Query("date"), "slots": slots})
}

type createRuleRequest struct {
	DayOfWeek           *int   `json:"day_of_week" binding:"required"`
	StartTime           string `json:"start_time" binding:"required"`
	EndTime             string `json:"end_time" binding:"required"`
	SlotDurationMinutes int    `json:"slot_duration_minutes" binding:"required"`
}

func (h *ScheduleHandler) CreateRule(c *gin.Context) {
	var req createRuleRequest
	if !bindJSON(c, &req) {
		return
	}
	claims := currentClaims(c)

	rule, err := h.availability.CreateRule(c.Request.Context(), claims.UserID, service.CreateRuleInput{
		DayOfWeek:           *req.DayOfWeek,
		StartTime:           req.StartTime,
		EndTime:             req.EndTime,
		SlotDurationMinutes: req.SlotDurationMinutes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, rule)
}

func (h *ScheduleHandler) ListRules(c *gin.Context) {
	claims := currentClaims(c)

	rules, err := h.availability.ListRules(c.Request.Context(), claims.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, rules)
}

func (h *ScheduleHandler) DeleteRule(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	claims := currentClaims(c)

	if err := h.availability.DeleteRule(c.Request.Context(), claims.UserID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": id})
}

type createBlockRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	StartTime string `json:"start_time"`
	EndDate   string `json:"end_date"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason"`
	IsAllDay  bool   `json:"is_all_day"`
}

func (h *ScheduleHandler) CreateBlock(c *gin.Context) {
	var req createBlockRequest
	if !bindJSON(c, &req) {
		return
	}
	claims := currentClaims(c)

	in, err := req.toInput()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	block, err := h.availability.CreateBlock(c.Request.Context(), claims.UserID, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, block)
}

func (r *createBlockRequest) toInput() (service.CreateBlockInput, error) {
	in := service.CreateBlockInput{Reason: r.Reason, IsAllDay: r.IsAllDay}

	if r.IsAllDay {
		start, err := parseSlotDateTime(r.StartDate, "00:00")
		if err != nil {
			return in, &service.ValidationError{Fields: []string{"start_date must be YYYY-MM-DD"}}
		}
		in.StartDateTime = start
		in.EndDateTime = start
		return in, nil
	}

	var fields []string
	start, err := parseSlotDateTime(r.StartDate, r.StartTime)
	if err != nil {
		fields = append(fields, "start_date must be YYYY-MM-DD and start_time must be HH:MM")
	}
	endDate := r.EndDate
	if endDate == "" {
		endDate = r.StartDate
	}
	end, err := parseSlotDateTime(endDate, r.EndTime)
	if err != nil {
		fields = append(fields, "end_date must be YYYY-MM-DD and end_time must be HH:MM")
	}
	if len(fields) > 0 {
		return in, &service.ValidationError{Fields: fields}
	}

	in.StartDateTime = start
	in.EndDateTime = end
	return in, nil
}

func (h *ScheduleHandler) ListBlocks(c *gin.Context) {
	claims := currentClaims(c)

	blocks, err := h.availability.ListBlocks(c.Request.Context(), claims.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, blocks)
}

func (h *ScheduleHandler) DeleteBlock(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	claims := currentClaims(c)

	if err := h.availability.DeleteBlock(c.Request.Context(), claims.UserID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": id})
}
