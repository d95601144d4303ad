package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pavelchamgl/booking/internal/dto"
	"github.com/pavelchamgl/booking/internal/service"
)

type FeedbackHandler struct {
	svc service.FeedbackService
}

func NewFeedbackHandler(svc service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

func (h *FeedbackHandler) RegisterRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/create/", h.Create, auth)
	g.GET("/accommodation/:accommodation_id/", h.List)
}

func (h *FeedbackHandler) List(c echo.Context) error {
	listingID, err := parseID(c, "accommodation_id")
	if err != nil {
		return err
	}

	feedbacks, err := h.svc.ListForListing(c.Request().Context(), listingID)
	if err != nil {
		return httpError(err)
	}

	resp := make([]dto.FeedbackResponse, len(feedbacks))
	for i := range feedbacks {
		resp[i] = dto.ToFeedbackResponse(&feedbacks[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *FeedbackHandler) Create(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.CreateFeedbackRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	fb, err := h.svc.Create(c.Request().Context(), userID, req.Accommodation, req.Text)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToFeedbackResponse(fb))
}
