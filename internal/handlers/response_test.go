package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kulinarya/backend/internal/apperrors"
	"github.com/kulinarya/backend/internal/models"
)

func newTestContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	return e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), rec), rec
}

func TestRespondEnvelope(t *testing.T) {
	c, rec := newTestContext("/")

	err := respond(c, http.StatusCreated, "Recipe submitted for moderation", map[string]any{"id": "abc"})
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(http.StatusCreated), body["statusCode"])
	assert.Equal(t, "Recipe submitted for moderation", body["message"])
	assert.Equal(t, "abc", body["id"])
}

func TestRespondErrorEnvelope(t *testing.T) {
	c, rec := newTestContext("/")

	require.NoError(t, respond(c, http.StatusNotFound, "recipe not found", nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
}

func TestParsePage(t *testing.T) {
	c, _ := newTestContext("/?limit=20&cursor=2026-03-10T12:00:00Z")
	page, err := parsePage(c)
	require.NoError(t, err)
	assert.Equal(t, int64(20), page.Limit)
	require.NotNil(t, page.Cursor)
	assert.Equal(t, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), page.Cursor.UTC())

	// defaults
	c, _ = newTestContext("/")
	page, err = parsePage(c)
	require.NoError(t, err)
	assert.Equal(t, int64(models.DefaultPageLimit), page.Limit)
	assert.Nil(t, page.Cursor)

	// oversized limit clamps
	c, _ = newTestContext("/?limit=500")
	page, err = parsePage(c)
	require.NoError(t, err)
	assert.Equal(t, int64(models.MaxPageLimit), page.Limit)

	// garbage is rejected
	c, _ = newTestContext("/?limit=abc")
	_, err = parsePage(c)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	c, _ = newTestContext("/?cursor=yesterday")
	_, err = parsePage(c)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestNextCursor(t *testing.T) {
	last := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	page := models.PageQuery{Limit: 10}

	// full page: cursor points at the last item
	assert.Equal(t, last.Format(time.RFC3339Nano), nextCursor(10, page, last))

	// short page: no more results
	assert.Empty(t, nextCursor(7, page, last))
}
