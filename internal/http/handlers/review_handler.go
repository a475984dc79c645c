package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pahnawa/internal/domain"
	applog "pahnawa/internal/log"
	"pahnawa/internal/repos"
	"pahnawa/internal/validate"
)

type ReviewHandler struct {
	Reviews *repos.ReviewRepo
}

// List serves reviews for one product or spot.
// GET /api/v1/reviews/:kind/:itemId
func (h *ReviewHandler) List(c *fiber.Ctx) error {
	kind, ok := validate.ItemKind(c.Params("kind"))
	if !ok {
		return failMsg(c, fiber.StatusBadRequest, "invalid item kind")
	}
	itemID, ok := validate.ID(c.Params("itemId"))
	if !ok {
		return failMsg(c, fiber.StatusBadRequest, "invalid item id")
	}
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	out, err := h.Reviews.ListForItem(c.Context(), kind, itemID, 20, (page-1)*20)
	if err != nil {
		applog.Error(c, "reviews.list.fail", err, map[string]any{"item_id": itemID})
		return failMsg(c, fiber.StatusInternalServerError, "could not load reviews")
	}
	return c.JSON(fiber.Map{"success": true, "reviews": out})
}

type createReviewRequest struct {
	ItemID   string `json:"itemId"`
	ItemKind string `json:"itemKind"`
	Author   string `json:"author"`
	Rating   int    `json:"rating"`
	Body     string `json:"body"`
}

// Create stores a review. POST /api/v1/reviews
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var req createReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return failMsg(c, fiber.StatusBadRequest, "invalid request body")
	}
	kind, ok := validate.ItemKind(req.ItemKind)
	if !ok {
		return failMsg(c, fiber.StatusBadRequest, "invalid item kind")
	}
	itemID, ok := validate.ID(req.ItemID)
	if !ok {
		return failMsg(c, fiber.StatusBadRequest, "invalid item id")
	}
	rating, ok := validate.Rating(req.Rating)
	if !ok {
		return failMsg(c, fiber.StatusBadRequest, "rating must be between 1 and 5")
	}
	author, ok := validate.Name(req.Author)
	if !ok {
		author = "Anonymous"
	}
	body := strings.TrimSpace(req.Body)
	if len(body) > 2000 {
		body = body[:2000]
	}

	rv := domain.Review{
		ID:       uuid.NewString(),
		ItemID:   itemID,
		ItemKind: kind,
		Author:   author,
		Rating:   rating,
		Body:     body,
	}
	if err := h.Reviews.Create(c.Context(), rv); err != nil {
		applog.Error(c, "reviews.create.fail", err, map[string]any{"item_id": itemID})
		return failMsg(c, fiber.StatusInternalServerError, "could not save review")
	}
	applog.Info(c, "reviews.create", map[string]any{"review_id": rv.ID, "item_id": itemID, "rating": rating})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "id": rv.ID})
}
