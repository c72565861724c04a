package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/veloralabs/storefront_api/internal/models"
	"github.com/veloralabs/storefront_api/internal/service"
	"github.com/veloralabs/storefront_api/internal/utils"
)

// TicketHandler handles support tickets for users and admins.
type TicketHandler struct {
	ticketService *service.TicketService
}

// NewTicketHandler constructs a TicketHandler.
func NewTicketHandler(ticketService *service.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// CreateTicket opens a new ticket for the session user.
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req struct {
		Subject  string                `json:"subject"`
		Message  string                `json:"message"`
		Priority models.TicketPriority `json:"priority"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "Invalid request body")
		return
	}

	ticket, err := h.ticketService.Open(c.Request.Context(), c.GetString("user_id"), req.Subject, req.Message, req.Priority)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(201, ticket)
}

// GetMyTickets returns the session user's tickets.
func (h *TicketHandler) GetMyTickets(c *gin.Context) {
	tickets, err := h.ticketService.ListUserTickets(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(200, gin.H{"tickets": tickets})
}

// GetTicket returns one ticket, scoped to the session user unless the
// session is an admin.
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticket, err := h.ticketService.Get(c.Request.Context(), c.GetString("user_id"), c.Param("id"), c.GetBool("is_admin"))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(200, ticket)
}

// ReplyTicket appends a reply to the ticket thread.
func (h *TicketHandler) ReplyTicket(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "Invalid request body")
		return
	}

	ticket, err := h.ticketService.Reply(c.Request.Context(), c.GetString("user_id"), c.Param("id"), req.Message, c.GetBool("is_admin"))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(200, ticket)
}

// ListTickets returns all tickets for the admin console.
func (h *TicketHandler) ListTickets(c *gin.Context) {
	tickets, err := h.ticketService.ListAll(c.Request.Context(), models.TicketStatus(c.Query("status")))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(200, gin.H{"tickets": tickets})
}

// UpdateTicketStatus sets the ticket status from the admin console.
func (h *TicketHandler) UpdateTicketStatus(c *gin.Context) {
	var req struct {
		Status models.TicketStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "Invalid request body")
		return
	}

	if err := h.ticketService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(200, gin.H{"status": req.Status})
}

// UpdateTicketPriority sets the ticket priority from the admin console.
func (h *TicketHandler) UpdateTicketPriority(c *gin.Context) {
	var req struct {
		Priority models.TicketPriority `json:"priority"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "Invalid request body")
		return
	}

	if err := h.ticketService.UpdatePriority(c.Request.Context(), c.Param("id"), req.Priority); err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(200, gin.H{"priority": req.Priority})
}
