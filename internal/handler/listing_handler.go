package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pavelchamgl/booking/internal/dto"
	"github.com/pavelchamgl/booking/internal/middleware"
	"github.com/pavelchamgl/booking/internal/repository"
	"github.com/pavelchamgl/booking/internal/service"
)

type ListingHandler struct {
	svc service.ListingService
}

func NewListingHandler(svc service.ListingService) *ListingHandler {
	return &ListingHandler{svc: svc}
}

func (h *ListingHandler) RegisterRoutes(g *echo.Group, auth, optionalAuth echo.MiddlewareFunc) {
	g.GET("/search/", h.Search)
	g.GET("/favorite/", h.Favorites, auth)
	g.GET("/similar/:id/", h.Similar)
	g.POST("/images/add/:id/", h.AddImages, auth)
	g.GET("/:id/", h.Detail, optionalAuth)
	g.PATCH("/:id/toggle_favorite/", h.ToggleFavorite, auth)
}

func (h *ListingHandler) Search(c echo.Context) error {
	filter, err := parseListingFilter(c)
	if err != nil {
		return err
	}

	listings, err := h.svc.Search(c.Request().Context(), filter)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToListingSummaries(listings))
}

func (h *ListingHandler) Detail(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var viewer *uint
	if uid, ok := middleware.UserID(c); ok {
		viewer = &uid
	}

	listing, isFavorite, err := h.svc.Detail(c.Request().Context(), id, viewer)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToListingDetail(listing, isFavorite))
}

func (h *ListingHandler) Similar(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	listings, err := h.svc.Similar(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToListingSummaries(listings))
}

func (h *ListingHandler) ToggleFavorite(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	added, err := h.svc.ToggleFavorite(c.Request().Context(), userID, id)
	if err != nil {
		return httpError(err)
	}

	msg := "Accommodation removed from favorites."
	if added {
		msg = "Accommodation added to favorites."
	}
	return c.JSON(http.StatusOK, dto.FavoriteToggleResponse{Message: msg, Favorite: added})
}

func (h *ListingHandler) Favorites(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	listings, err := h.svc.Favorites(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToListingSummaries(listings))
}

// AddImages accepts multipart form files under the "images" key.
func (h *ListingHandler) AddImages(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "expected multipart form with images")
	}

	headers := form.File["images"]
	files := make([]service.ImageFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "cannot read image "+fh.Filename)
		}
		defer f.Close()
		files = append(files, service.ImageFile{Name: fh.Filename, Content: f})
	}

	images, err := h.svc.AddImages(c.Request().Context(), id, files)
	if err != nil {
		return httpError(err)
	}

	resp := make([]dto.ImageResponse, len(images))
	for i, img := range images {
		resp[i] = dto.ImageResponse{Image: img.URL}
	}
	return c.JSON(http.StatusCreated, resp)
}

func parseListingFilter(c echo.Context) (repository.ListingFilter, error) {
	var f repository.ListingFilter

	if v := c.QueryParam("check_in_date"); v != "" {
		d, err := time.Parse(dto.DateLayout, v)
		if err != nil {
			return f, echo.NewHTTPError(http.StatusBadRequest, "check_in_date must be a date in YYYY-MM-DD format")
		}
		f.CheckInDate = &d
	}

	var err error
	if f.NumAdults, err = optionalInt(c, "num_adults"); err != nil {
		return f, err
	}
	if f.NumChildren, err = optionalInt(c, "num_children"); err != nil {
		return f, err
	}
	if f.CostLTE, err = optionalFloat(c, "cost__lte"); err != nil {
		return f, err
	}
	if f.CostGTE, err = optionalFloat(c, "cost__gte"); err != nil {
		return f, err
	}

	if v := c.QueryParam("breakfast_included"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, echo.NewHTTPError(http.StatusBadRequest, "breakfast_included must be true or false")
		}
		f.BreakfastIncluded = &b
	}

	f.City = c.QueryParam("city")
	f.AccommodationType = c.QueryParam("accommodation_type")
	if f.AccommodationType == "" {
		f.AccommodationType = c.QueryParam("accommodation_type__name")
	}

	switch o := repository.SortOrder(c.QueryParam("ordering")); o {
	case repository.SortDefault, repository.SortCostAsc, repository.SortCostDesc:
		f.Ordering = o
	default:
		return f, echo.NewHTTPError(http.StatusBadRequest, "ordering must be cost or -cost")
	}

	return f, nil
}

func optionalInt(c echo.Context, name string) (*int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" must be a non-negative integer")
	}
	return &n, nil
}

func optionalFloat(c echo.Context, name string) (*float64, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" must be a number")
	}
	return &n, nil
}
