package handler

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	forecastapp "github.com/ghxstship/backend/internal/application/forecast"
	"github.com/ghxstship/backend/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadCSV(t *testing.T, env *testEnv, field, content string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, "sales.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ticket-sales/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	return w
}

func TestForecastHandler_ImportSales(t *testing.T) {
	env := newTestEnv(t)
	event := uuid.New()

	var csv strings.Builder
	csv.WriteString("event_id,quantity,amount,sold_at,channel\n")
	for m := 1; m <= 12; m++ {
		fmt.Fprintf(&csv, "%s,%d,%d.00,2025-%02d-15,box_office\n", event, 10*m, 250*m, m)
	}

	w := uploadCSV(t, env, "file", csv.String())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	result := testutil.DecodeData[forecastapp.ImportResult](t, w)
	assert.Equal(t, 12, result.TotalRows)
	assert.Equal(t, 12, result.ImportedRows)

	w = testutil.DoJSON(t, env.engine, http.MethodGet, "/api/v1/ticket-sales?event_id="+event.String()+"&page_size=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	listed := testutil.Decode(t, w)
	require.NotNil(t, listed.Meta)
	assert.EqualValues(t, 12, listed.Meta.Total)
	assert.Equal(t, 5, listed.Meta.PageSize)
}

func TestForecastHandler_ImportSales_RowErrorsRejectFile(t *testing.T) {
	env := newTestEnv(t)
	event := uuid.NewString()
	csv := "event_id,quantity,amount,sold_at\n" +
		event + ",4,80.00,2025-03-01\n" +
		event + ",zero,80.00,2025-03-02\n" +
		"nope,2,40.00,2025-03-03\n"

	w := uploadCSV(t, env, "file", csv)
	body := testutil.AssertError(t, w, http.StatusBadRequest, "ERR_VALIDATION")
	require.Len(t, body.Error.Details, 2)
	assert.Equal(t, "2 validation errors in upload; nothing was imported", body.Error.Message)
	assert.Equal(t, "quantity", body.Error.Details[0].Field)
	assert.Equal(t, 3, body.Error.Details[0].Row)
	assert.Equal(t, "zero", body.Error.Details[0].Value)
	assert.Equal(t, "event_id", body.Error.Details[1].Field)

	// nothing was stored
	w = testutil.DoJSON(t, env.engine, http.MethodGet, "/api/v1/ticket-sales", nil)
	assert.EqualValues(t, 0, testutil.Decode(t, w).Meta.Total)
}

func TestForecastHandler_ImportSales_ErrorsCountedPerCell(t *testing.T) {
	env := newTestEnv(t)
	csv := "event_id,quantity,amount,sold_at\n" +
		"nope,zero,80.00,2025-03-02\n"

	w := uploadCSV(t, env, "file", csv)
	body := testutil.AssertError(t, w, http.StatusBadRequest, "ERR_VALIDATION")
	require.Len(t, body.Error.Details, 2)
	assert.Equal(t, 2, body.Error.Details[0].Row)
	assert.Equal(t, 2, body.Error.Details[1].Row)
	assert.Equal(t, "2 validation errors in upload; nothing was imported", body.Error.Message)
}

func TestImportErrorMessage(t *testing.T) {
	assert.Equal(t, "1 validation error in upload; nothing was imported", importErrorMessage(1))
	assert.Equal(t, "3 validation errors in upload; nothing was imported", importErrorMessage(3))
}

func TestForecastHandler_ImportSales_BadUploads(t *testing.T) {
	env := newTestEnv(t)

	t.Run("missing columns", func(t *testing.T) {
		w := uploadCSV(t, env, "file", "event_id,quantity\n"+uuid.NewString()+",1\n")
		testutil.AssertError(t, w, http.StatusBadRequest, "ERR_VALIDATION")
	})

	t.Run("wrong field", func(t *testing.T) {
		w := uploadCSV(t, env, "upload", "event_id,quantity,amount,sold_at\n")
		testutil.AssertError(t, w, http.StatusBadRequest, "ERR_BAD_REQUEST")
	})
}

func TestForecastHandler_DemandForecast(t *testing.T) {
	env := newTestEnv(t)
	event := uuid.New()
	now := time.Now().UTC()
	for i := 1; i <= 24; i++ {
		w := testutil.DoJSON(t, env.engine, http.MethodPost, "/api/v1/ticket-sales", map[string]any{
			"event_id": event, "quantity": 100 + i, "amount": "1000", "sold_at": now.AddDate(0, -i, 0),
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := testutil.DoJSON(t, env.engine, http.MethodGet,
		"/api/v1/forecasts/demand?metric=quantity&horizon=6&event_id="+event.String(), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := testutil.DecodeData[forecastapp.ForecastResponse](t, w)
	assert.Len(t, resp.Points, 6)
	assert.False(t, resp.Cached)

	w = testutil.DoJSON(t, env.engine, http.MethodGet,
		"/api/v1/forecasts/demand?metric=quantity&horizon=6&event_id="+event.String(), nil)
	assert.True(t, testutil.DecodeData[forecastapp.ForecastResponse](t, w).Cached)

	t.Run("invalid query", func(t *testing.T) {
		w := testutil.DoJSON(t, env.engine, http.MethodGet, "/api/v1/forecasts/demand?horizon=99", nil)
		testutil.AssertError(t, w, http.StatusBadRequest, "ERR_VALIDATION")

		w = testutil.DoJSON(t, env.engine, http.MethodGet, "/api/v1/forecasts/demand?event_id=xyz", nil)
		testutil.AssertError(t, w, http.StatusBadRequest, "ERR_VALIDATION")
	})
}

func TestForecastHandler_ForecastSeries(t *testing.T) {
	env := newTestEnv(t)

	w := testutil.DoJSON(t, env.engine, http.MethodPost, "/api/v1/forecasts/series",
		map[string]any{"values": []float64{10, 12, 14, 16, 18, 20}, "horizon": 3})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, testutil.DecodeData[forecastapp.ForecastResponse](t, w).Points, 3)

	w = testutil.DoJSON(t, env.engine, http.MethodPost, "/api/v1/forecasts/series",
		map[string]any{"values": []float64{}, "horizon": 3})
	testutil.AssertError(t, w, http.StatusBadRequest, "ERR_VALIDATION")
}

func TestForecastHandler_ForecastSeries_Magnitudes(t *testing.T) {
	env := newTestEnv(t)
	values := func(v float64) []float64 {
		out := make([]float64, 12)
		for i := range out {
			out[i] = v
		}
		return out
	}

	w := testutil.DoJSON(t, env.engine, http.MethodPost, "/api/v1/forecasts/series",
		map[string]any{"values": values(1e308), "horizon": 3})
	testutil.AssertError(t, w, http.StatusBadRequest, "ERR_VALIDATION")

	w = testutil.DoJSON(t, env.engine, http.MethodPost, "/api/v1/forecasts/series",
		map[string]any{"values": values(1e12), "horizon": 3})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := testutil.DecodeData[forecastapp.ForecastResponse](t, w)
	require.Len(t, resp.Points, 3)
	assert.InDelta(t, 1e12, resp.Level, 1)
	for _, p := range resp.Points {
		assert.Greater(t, p.Upper, p.Value)
	}
}
