package utils

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"repair-system/pkg/contextkeys"
	apperrors "repair-system/pkg/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseFilterFromQuery(t *testing.T) {
	values, err := url.ParseQuery("limit=10&page=2&search=SN-CMP&sort[created_at]=desc&filter[status]=working")
	assert.NoError(t, err)

	filter := ParseFilterFromQuery(values)
	assert.Equal(t, 10, filter.Limit)
	assert.Equal(t, 2, filter.Page)
	assert.Equal(t, 10, filter.Offset)
	assert.Equal(t, "SN-CMP", filter.Search)
	assert.Equal(t, "desc", filter.Sort["created_at"])
	assert.Equal(t, "working", filter.Filter["status"])
}

func TestParseFilterFromQuery_Defaults(t *testing.T) {
	filter := ParseFilterFromQuery(url.Values{})
	assert.Equal(t, DefaultLimit, filter.Limit)
	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, 0, filter.Offset)
}

func TestParseFilterFromQuery_LimitCapped(t *testing.T) {
	values := url.Values{"limit": []string{"100000"}}
	filter := ParseFilterFromQuery(values)
	assert.Equal(t, MaxLimit, filter.Limit)
}

func TestErrorResponseLogsRequestID(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	logger := zap.New(core)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(req.Context(), contextkeys.RequestIDKey, "req-42")
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Внутренняя ошибка сервера", fmt.Errorf("отказ хранилища"), nil)
	require.NoError(t, ErrorResponse(c, httpErr, logger))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-42", entries[0].ContextMap()["request_id"])
}

func TestParseFilterFromQuery_InvalidSortDirectionIgnored(t *testing.T) {
	values, err := url.ParseQuery("sort[name]=sideways")
	assert.NoError(t, err)

	filter := ParseFilterFromQuery(values)
	_, ok := filter.Sort["name"]
	assert.False(t, ok)
}
