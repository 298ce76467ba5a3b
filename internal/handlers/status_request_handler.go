package handlers

import (
	"strconv"

	"github.com/Giridhar-07/civitrack-app/internal/auth"
	"github.com/Giridhar-07/civitrack-app/internal/dto"
	"github.com/Giridhar-07/civitrack-app/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type StatusRequestHandler struct {
	requestService *services.StatusRequestService
}

func NewStatusRequestHandler(requestService *services.StatusRequestService) *StatusRequestHandler {
	return &StatusRequestHandler{requestService: requestService}
}

func (h *StatusRequestHandler) Create(c *fiber.Ctx) error {
	p, err := auth.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	issueID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid issue ID")
	}

	var req dto.CreateStatusRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	request, err := h.requestService.RequestChange(issueID, p.ID, &req)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(request)
}

func (h *StatusRequestHandler) Review(c *fiber.Ctx) error {
	p, err := auth.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid request ID")
	}

	var req dto.ReviewStatusRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	request, err := h.requestService.Review(requestID, p, req.Action, req.Comment)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(request)
}

func (h *StatusRequestHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	resp, err := h.requestService.List(&dto.ListStatusRequestsQuery{
		State:  c.Query("state", "pending"),
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return internalError(c)
	}
	return c.JSON(resp)
}
