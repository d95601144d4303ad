package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pavelchamgl/booking/internal/dto"
	"github.com/pavelchamgl/booking/internal/models"
	"github.com/pavelchamgl/booking/internal/service"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// RegisterRoutes mounts every booking route behind auth.
func (h *BookingHandler) RegisterRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.Use(auth)
	g.POST("/create/", h.CreateBooking)
	g.GET("/list/:category/", h.ListBookings)
	g.PATCH("/cancel/:id/", h.CancelBooking)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.CreateBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	// Layout already checked by the validator.
	arrival, _ := time.Parse(dto.DateLayout, req.ArrivalDate)
	departure, _ := time.Parse(dto.DateLayout, req.DepartureDate)

	booking, err := h.svc.CreateBooking(c.Request().Context(), userID, service.CreateBookingInput{
		ListingID:     req.Accommodation,
		ArrivalDate:   arrival,
		DepartureDate: departure,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	category := models.BookingCategory(c.Param("category"))
	listings, err := h.svc.ListBookings(c.Request().Context(), userID, category)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToListingSummaries(listings))
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	booking, err := h.svc.CancelBooking(c.Request().Context(), userID, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}
