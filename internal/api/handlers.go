package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"propertychat/internal/auth"
	"propertychat/internal/chat"
	"propertychat/internal/leads"
	"propertychat/internal/logger"
	"propertychat/internal/models"
)

// fallbackError is what clients see on unexpected failures. Details go to the
// log, never over the wire.
const fallbackError = "Something went wrong on our side. Please contact us directly and we'll help you right away."

// Handler wires HTTP routes to the conversation gateway and the lead service.
type Handler struct {
	gateway    *chat.Gateway
	hours      *chat.HoursPolicy
	leads      *leads.Service
	adminToken string
}

// NewHandler constructs a Handler instance.
func NewHandler(gateway *chat.Gateway, hours *chat.HoursPolicy, leadService *leads.Service, adminToken string) *Handler {
	return &Handler{
		gateway:    gateway,
		hours:      hours,
		leads:      leadService,
		adminToken: adminToken,
	}
}

// RegisterRoutes attaches all HTTP routes to the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.POST("/chat", h.postChat)
	router.GET("/chat", h.chatInfo)
	router.GET("/status", h.hoursStatus)

	api := router.Group("/api")
	api.POST("/leads", h.createLead)
	admin := api.Group("/leads")
	admin.Use(auth.Middleware(h.adminToken))
	admin.GET("", h.listLeads)
	admin.GET("/:id", h.getLead)
	admin.PATCH("/:id", h.updateLeadStatus)
	admin.DELETE("/:id", h.deleteLead)
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

func (h *Handler) postChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.gateway.Handle(c.Request.Context(), chat.Request{
		Text:      req.Message,
		SessionID: req.SessionID,
		ClientID:  c.ClientIP(),
	})
	if err != nil {
		var vErr *chat.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Reason})
		case errors.Is(err, chat.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please wait a minute and try again."})
		default:
			logger.L.Error("chat turn failed", "error", err, "client", c.ClientIP())
			c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackError})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"response":      result.Reply.Content,
		"sessionId":     result.SessionID,
		"timestamp":     result.Reply.CreatedAt.UTC().Format(time.RFC3339),
		"options":       result.Reply.Options,
		"requiresHuman": result.Reply.Meta.RequiresHuman,
	})
}

// chatInfo is the liveness probe. Static by contract: it must answer even
// when every stateful collaborator is unhappy.
func (h *Handler) chatInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Conversational gateway is up. POST {\"message\": \"...\"} to start chatting.",
	})
}

func (h *Handler) hoursStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"online":  h.hours.IsOpenNow(),
		"message": h.hours.StatusMessage(),
	})
}

type leadRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
	Source    string `json:"source"`
	SessionID string `json:"sessionId"`
}

func (h *Handler) createLead(c *gin.Context) {
	var req leadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	lead, err := h.leads.Create(c.Request.Context(), models.Lead{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
		Source:  req.Source,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.SessionID != "" {
		h.gateway.MarkLeadCaptured(req.SessionID)
	}
	c.JSON(http.StatusCreated, lead)
}

func (h *Handler) listLeads(c *gin.Context) {
	list, err := h.leads.List(c.Request.Context())
	if err != nil {
		logger.L.Error("list leads failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackError})
		return
	}
	if list == nil {
		list = make([]models.Lead, 0)
	}
	c.JSON(http.StatusOK, gin.H{"leads": list})
}

func (h *Handler) getLead(c *gin.Context) {
	id, ok := h.leadID(c)
	if !ok {
		return
	}
	lead, err := h.leads.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "lead not found"})
			return
		}
		logger.L.Error("get lead failed", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackError})
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (h *Handler) updateLeadStatus(c *gin.Context) {
	id, ok := h.leadID(c)
	if !ok {
		return
	}
	var req struct {
		Status models.LeadStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.leads.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "lead not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) deleteLead(c *gin.Context) {
	id, ok := h.leadID(c)
	if !ok {
		return
	}
	if err := h.leads.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "lead not found"})
			return
		}
		logger.L.Error("delete lead failed", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackError})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) leadID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lead id"})
		return 0, false
	}
	return id, true
}
