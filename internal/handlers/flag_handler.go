package handlers

import (
	"strconv"

	"github.com/Giridhar-07/civitrack-app/internal/auth"
	"github.com/Giridhar-07/civitrack-app/internal/dto"
	"github.com/Giridhar-07/civitrack-app/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type FlagHandler struct {
	flagService *services.FlagService
}

func NewFlagHandler(flagService *services.FlagService) *FlagHandler {
	return &FlagHandler{flagService: flagService}
}

func (h *FlagHandler) Create(c *fiber.Ctx) error {
	p, err := auth.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	issueID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid issue ID")
	}

	var req dto.CreateFlagRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	flag, err := h.flagService.Flag(issueID, p.ID, req.Reason)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(flag)
}

func (h *FlagHandler) ListForIssue(c *fiber.Ctx) error {
	issueID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid issue ID")
	}

	flags, err := h.flagService.ListUnresolvedForIssue(issueID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(fiber.Map{"flags": flags})
}

func (h *FlagHandler) ListQueue(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	var resolved *bool
	if v := c.Query("resolved"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return badRequest(c, "invalid resolved filter")
		}
		resolved = &b
	}

	resp, err := h.flagService.ListQueue(resolved, page, limit)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(resp)
}

func (h *FlagHandler) Resolve(c *fiber.Ctx) error {
	p, err := auth.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	flagID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid flag ID")
	}

	flag, err := h.flagService.Resolve(flagID, p)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(flag)
}
