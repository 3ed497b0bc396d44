package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appsvc "raidboard/internal/app"
	"raidboard/internal/index"
	"raidboard/internal/model"
	"raidboard/internal/transport/http/response"
)

// AdminHandler exposes the operator API: login, raid inspection,
// room enablement, entity lookups and the audit trail.
type AdminHandler struct {
	admin  *appsvc.AdminService
	bosses *index.Index
	gyms   *index.Index
}

func NewAdminHandler(admin *appsvc.AdminService, bosses, gyms *index.Index) *AdminHandler {
	return &AdminHandler{admin: admin, bosses: bosses, gyms: gyms}
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "password is required")
		return
	}

	token, err := h.admin.Login(req.Password)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid credentials")
		return
	}
	response.OK(c, gin.H{"token": token})
}

func (h *AdminHandler) GetRaid(c *gin.Context) {
	code := c.Param("code")

	raid, err := h.admin.InspectRaid(c.Request.Context(), code)
	if errors.Is(err, appsvc.ErrRaidNotFound) {
		response.Error(c, http.StatusNotFound, response.CodeRaidNotFound, "raid not found or expired")
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "raid lookup failed")
		return
	}
	response.OK(c, raid)
}

type roomRequest struct {
	RoomID int64 `json:"room_id" binding:"required"`
}

func (h *AdminHandler) EnableRoom(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "room_id is required")
		return
	}
	if err := h.admin.EnableRoom(c.Request.Context(), req.RoomID); err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "enable room failed")
		return
	}
	response.OK(c, gin.H{"room_id": req.RoomID, "enabled": true})
}

func (h *AdminHandler) GetRoom(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "room id must be an integer")
		return
	}
	enabled, err := h.admin.RoomEnabled(c.Request.Context(), roomID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "room lookup failed")
		return
	}
	response.OK(c, gin.H{"room_id": roomID, "enabled": enabled})
}

func (h *AdminHandler) DisableRoom(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "room_id is required")
		return
	}
	if err := h.admin.DisableRoom(c.Request.Context(), req.RoomID); err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "disable room failed")
		return
	}
	response.OK(c, gin.H{"room_id": req.RoomID, "enabled": false})
}

// LookupEntity resolves a query against the boss or gym index with the
// same fuzzy matching the bot applies to subject replies. Handy for
// checking what a misspelled name would resolve to.
func (h *AdminHandler) LookupEntity(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "q is required")
		return
	}

	var idx *index.Index
	switch c.Query("kind") {
	case "boss":
		idx = h.bosses
	case "gym":
		idx = h.gyms
	default:
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "kind must be boss or gym")
		return
	}

	min := index.DefaultMinConfidence
	if raw := c.Query("min"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 || parsed > 1 {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "min must be a number between 0 and 1")
			return
		}
		min = parsed
	}

	entity := idx.Find(query, min)
	if entity == nil {
		response.OK(c, gin.H{"query": query, "match": nil})
		return
	}
	response.OK(c, gin.H{"query": query, "match": entity.Name})
}

func (h *AdminHandler) ListAudit(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	var (
		records []model.InteractionRecord
		err     error
	)
	if code := c.Query("code"); code != "" {
		records, err = h.admin.RaidAudit(code, limit)
	} else {
		records, err = h.admin.RecentAudit(limit)
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "audit lookup failed")
		return
	}
	response.OK(c, gin.H{"records": records})
}
