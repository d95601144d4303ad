package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pavelchamgl/booking/internal/dto"
	"github.com/pavelchamgl/booking/internal/middleware"
	"github.com/pavelchamgl/booking/internal/models"
	"github.com/pavelchamgl/booking/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFeedback_Handler(t *testing.T) {
	svc := &mockFeedbackService{
		listFn: func(ctx context.Context, listingID uint) ([]models.Feedback, error) {
			return []models.Feedback{
				{ID: 1, UserID: 2, ListingID: listingID, Text: "Great stay", User: &models.User{Username: "guest"}},
			}, nil
		},
	}

	c, rec := newContext(http.MethodGet, "/neobooking/feedbacks/accommodation/5/", nil, "")
	c.SetParamNames("accommodation_id")
	c.SetParamValues("5")

	require.NoError(t, NewFeedbackHandler(svc).List(c))

	var resp []dto.FeedbackResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "guest", resp[0].Username)
	assert.Equal(t, uint(5), resp[0].ListingID)
}

func TestListFeedback_Handler_Empty(t *testing.T) {
	svc := &mockFeedbackService{
		listFn: func(ctx context.Context, listingID uint) ([]models.Feedback, error) {
			return nil, nil
		},
	}

	c, rec := newContext(http.MethodGet, "/neobooking/feedbacks/accommodation/5/", nil, "")
	c.SetParamNames("accommodation_id")
	c.SetParamValues("5")

	require.NoError(t, NewFeedbackHandler(svc).List(c))
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestListFeedback_Routes(t *testing.T) {
	var gotListing uint
	svc := &mockFeedbackService{
		listFn: func(ctx context.Context, listingID uint) ([]models.Feedback, error) {
			gotListing = listingID
			return []models.Feedback{}, nil
		},
	}
	passthrough := func(next echo.HandlerFunc) echo.HandlerFunc { return next }

	e := echo.New()
	e.Validator = middleware.NewRequestValidator()
	NewFeedbackHandler(svc).RegisterRoutes(e.Group("/neobooking/feedbacks"), passthrough)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/neobooking/feedbacks/accommodation/5/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(5), gotListing)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/neobooking/feedbacks/5/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateFeedback_Handler(t *testing.T) {
	svc := &mockFeedbackService{
		createFn: func(ctx context.Context, userID, listingID uint, text string) (*models.Feedback, error) {
			return &models.Feedback{ID: 9, UserID: userID, ListingID: listingID, Text: text, User: &models.User{ID: userID, Username: "guest"}}, nil
		},
	}

	c, rec := newContext(http.MethodPost, "/neobooking/feedbacks/create/", strings.NewReader(`{"accommodation":5,"text":"Lovely"}`), echo.MIMEApplicationJSON)
	asUser(c, 2)

	require.NoError(t, NewFeedbackHandler(svc).Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.FeedbackResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Lovely", resp.Text)
	assert.Equal(t, uint(2), resp.UserID)
	assert.Equal(t, "guest", resp.Username)
}

func TestCreateFeedback_Handler_UnknownListing(t *testing.T) {
	svc := &mockFeedbackService{
		createFn: func(ctx context.Context, userID, listingID uint, text string) (*models.Feedback, error) {
			return nil, service.ErrListingNotFound
		},
	}

	c, _ := newContext(http.MethodPost, "/neobooking/feedbacks/create/", strings.NewReader(`{"accommodation":99,"text":"?"}`), echo.MIMEApplicationJSON)
	asUser(c, 2)

	err := NewFeedbackHandler(svc).Create(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}
