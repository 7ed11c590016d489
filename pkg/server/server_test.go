package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/boxoffice-atlas/pkg/models/api"
	"github.com/de-tools/boxoffice-atlas/pkg/models/domain"
	"github.com/de-tools/boxoffice-atlas/pkg/services/dashboard"
	"github.com/de-tools/boxoffice-atlas/pkg/services/dataset"
	"github.com/de-tools/boxoffice-atlas/web"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource []domain.Record

func (s staticSource) Load(context.Context) ([]domain.Record, error) {
	return s, nil
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	templates, err := web.ParseTemplates()
	require.NoError(t, err)

	cache := dataset.NewCache(staticSource{
		{Year: 2001, Genre: "Action", Gross: 100},
		{Year: 2001, Genre: "Comedy", Gross: 50},
		{Year: 2002, Genre: "Action", Gross: 200},
		{Year: 2003, Genre: "Drama", Gross: 75},
	})
	explorer := dashboard.NewExplorer(cache, dashboard.Defaults{
		Genres: []string{"Action", "Comedy"},
		Years:  domain.YearRange{Min: 2000, Max: 2016},
	})

	config := Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Explorer:  explorer,
			Templates: templates,
			Logger:    logger,
		},
	}
	router := ConfigureRouter(config)
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expected       interface{}
		parseResponse  func([]byte) (interface{}, error)
	}{
		{
			name:           "Summary",
			path:           "/api/v1/summary",
			expectedStatus: http.StatusOK,
			expected: api.Summary{
				Genres:       []string{"Action", "Comedy", "Drama"},
				Years:        api.YearRange{From: 2001, To: 2003},
				RecordsCount: 4,
			},
			parseResponse: unmarshalResponse[api.Summary](),
		},
		{
			name:           "Revenue",
			path:           "/api/v1/revenue?genre=Action&genre=Comedy&from=2001&to=2002",
			expectedStatus: http.StatusOK,
			expected: api.RevenueView{
				Criteria: api.Criteria{
					Genres: []string{"Action", "Comedy"},
					Years:  api.YearRange{From: 2001, To: 2002},
				},
				Genres: []string{"Action", "Comedy"},
				Rows: []api.PivotRow{
					{Year: 2002, Gross: map[string]float64{"Action": 200, "Comedy": 0}},
					{Year: 2001, Gross: map[string]float64{"Action": 100, "Comedy": 50}},
				},
				Series: []api.SeriesPoint{
					{Year: 2001, Genre: "Action", Gross: 100},
					{Year: 2001, Genre: "Comedy", Gross: 50},
					{Year: 2002, Genre: "Action", Gross: 200},
					{Year: 2002, Genre: "Comedy", Gross: 0},
				},
				Totals: []api.GenreTotal{
					{Genre: "Action", Gross: 300, Percentage: 85.714285714286},
					{Genre: "Comedy", Gross: 50, Percentage: 14.285714285714},
				},
				TotalGross: 350,
			},
			parseResponse: unmarshalResponse[api.RevenueView](),
		},
		{
			name:           "Revenue_DefaultsClampedToDataset",
			path:           "/api/v1/revenue",
			expectedStatus: http.StatusOK,
			expected:       api.Criteria{Genres: []string{"Action", "Comedy"}, Years: api.YearRange{From: 2001, To: 2003}},
			parseResponse: func(data []byte) (interface{}, error) {
				var response api.RevenueView
				err := json.Unmarshal(data, &response)
				return response.Criteria, err
			},
		},
		{
			name:           "Revenue_InvalidRange",
			path:           "/api/v1/revenue?from=2003&to=2001",
			expectedStatus: http.StatusBadRequest,
			expected:       "'from' must not be after 'to'\n",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
		{
			name:           "Healthz",
			path:           "/healthz",
			expectedStatus: http.StatusOK,
			expected:       "",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Get(testServer.URL + tc.path)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			actual, err := tc.parseResponse(body)
			require.NoError(t, err, "Failed to parse response")

			assert.Equal(t, tc.expected, actual)
		})
	}

	t.Run("Dashboard", func(t *testing.T) {
		resp, err := http.Get(testServer.URL + "/?genre=Drama&from=2003&to=2003")
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), "<td>2003</td><td>75</td>")
	})
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var response T
		err := json.Unmarshal(data, &response)
		return response, err
	}
}
