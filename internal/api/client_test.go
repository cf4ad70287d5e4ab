package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drumkit/drumkit/internal/load"
)

func TestListLoadsOmitsEmptyParams(t *testing.T) {
	var gotQuery string
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		assert.NotEmpty(t, r.Header.Get(RequestIDHeader))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/v2")
	rows, err := c.ListLoads(context.Background(), ListParams{})
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, "/v2/view-loads", gotPath)
	assert.Equal(t, "", gotQuery)

	_, err = c.ListLoads(context.Background(), ListParams{Start: "25", PageSize: "25"})
	require.NoError(t, err)
	assert.Equal(t, "pageSize=25&start=25", gotQuery)

	_, err = c.ListLoads(context.Background(), ListParams{PageSize: "10"})
	require.NoError(t, err)
	assert.Equal(t, "pageSize=10", gotQuery)
}

func TestListLoadsDecodesRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1, "customId": "A1", "status": {"code": {"key": "1", "value": "Covered"}}, "customerOrder": [], "carrierOrder": null}]`))
	}))
	defer srv.Close()

	rows, err := NewClient(srv.URL).ListLoads(context.Background(), ListParams{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0].ID)
	assert.Equal(t, "Covered", rows[0].StatusValue())
	assert.False(t, rows[0].HasCarrier())
}

func TestCreateLoadPostsPayload(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/create-load", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		raw, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(raw, &body))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	payload := load.Load{
		Pickup:         load.Stop{Name: "P", ApptTime: "", City: "Austin", State: "TX", Country: load.DefaultCountry},
		Consignee:      load.Stop{Name: "C", City: "Boston", State: "MA", Country: load.DefaultCountry},
		Status:         load.StatusInTransit,
		Customer:       load.CustomerRef{Name: "Acme", ExternalTMSID: "T-9"},
		Specifications: load.Specifications{MinTempFahrenheit: 32, MaxTempFahrenheit: 75},
		TotalWeight:    1200,
	}
	resp, err := NewClient(srv.URL).CreateLoad(context.Background(), payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, string(resp))

	pickup := body["pickup"].(map[string]any)
	assert.Equal(t, "", pickup["apptTime"])
	assert.Equal(t, "USA", pickup["country"])
	assert.Equal(t, "In Transit", body["status"])
	assert.Equal(t, "T-9", body["customer"].(map[string]any)["externalTMSId"])
	assert.EqualValues(t, 32, body["specifications"].(map[string]any)["minTempFahrenheit"])
	assert.EqualValues(t, 1200, body["totalWeight"])
	_, hasID := body["id"]
	assert.False(t, hasID, "empty id should be omitted")
}

func TestNonSuccessBecomesStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message": "Internal server error"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).ListLoads(context.Background(), ListParams{})
	require.Error(t, err)
	assert.True(t, IsStatus(err))

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 500, apiErr.StatusCode)

	described := Describe(err)
	assert.Contains(t, described, `"status": 500`)
	assert.Contains(t, described, "Internal server error")
}

func TestTransportErrorIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).CreateLoad(context.Background(), load.Load{})
	require.Error(t, err)
	assert.True(t, IsTransport(err))
	assert.Contains(t, Describe(err), `"FETCH_ERROR"`)
}

func TestUndecodableBodyIsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "an array"`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).ListLoads(context.Background(), ListParams{})
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindDecode, apiErr.Kind)
	assert.True(t, strings.Contains(Describe(err), "PARSING_ERROR"))
}

func TestDescribeWrapsForeignErrors(t *testing.T) {
	assert.Equal(t, "", Describe(nil))
	assert.Contains(t, Describe(errors.New("boom")), `"error": "boom"`)
}

func TestDefaultBaseURL(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, NewClient("  ").BaseURL())
	assert.Equal(t, "http://x/v2", NewClient("http://x/v2/").BaseURL())
}
