package handlers

import (
	"strconv"

	"github.com/Giridhar-07/civitrack-app/internal/auth"
	"github.com/Giridhar-07/civitrack-app/internal/dto"
	"github.com/Giridhar-07/civitrack-app/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IssueHandler struct {
	issueService  *services.IssueService
	nearbyService *services.NearbyService
}

func NewIssueHandler(issueService *services.IssueService, nearbyService *services.NearbyService) *IssueHandler {
	return &IssueHandler{issueService: issueService, nearbyService: nearbyService}
}

func (h *IssueHandler) Create(c *fiber.Ctx) error {
	p, err := auth.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	issue, err := h.issueService.Create(p.ID, &req)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(issue)
}

func (h *IssueHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid issue ID")
	}

	issue, err := h.issueService.Get(id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(issue)
}

func (h *IssueHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	resp, err := h.issueService.List(&dto.ListIssuesQuery{
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort", "newest"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return internalError(c)
	}
	return c.JSON(resp)
}

func (h *IssueHandler) ListMine(c *fiber.Ctx) error {
	p, err := auth.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	resp, err := h.issueService.ListByReporter(p.ID, page, limit)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(resp)
}

func (h *IssueHandler) Update(c *fiber.Ctx) error {
	p, err := auth.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid issue ID")
	}

	var req dto.UpdateIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	issue, err := h.issueService.Update(id, p, &req)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(issue)
}

func (h *IssueHandler) ChangeStatus(c *fiber.Ctx) error {
	p, err := auth.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid issue ID")
	}

	var req dto.ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	issue, err := h.issueService.ChangeStatus(id, p, req.Status, req.Comment)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(issue)
}

func (h *IssueHandler) Delete(c *fiber.Ctx) error {
	p, err := auth.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid issue ID")
	}

	if err := h.issueService.Delete(id, p); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Issue deleted successfully"})
}

func (h *IssueHandler) Nearby(c *fiber.Ctx) error {
	lat, errLat := strconv.ParseFloat(c.Query("latitude"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("longitude"), 64)
	if errLat != nil || errLon != nil {
		return badRequest(c, "latitude and longitude are required")
	}
	radius, err := strconv.ParseFloat(c.Query("radius", "5"), 64)
	if err != nil {
		return badRequest(c, "invalid radius")
	}

	issues, err := h.nearbyService.FindNear(&dto.NearbyQuery{
		Latitude:  lat,
		Longitude: lon,
		RadiusKm:  radius,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"issues": issues, "count": len(issues)})
}
