package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/de-tools/boxoffice-atlas/pkg/models/api"
	"github.com/de-tools/boxoffice-atlas/pkg/models/domain"
	"github.com/de-tools/boxoffice-atlas/pkg/services/dashboard"
	"github.com/de-tools/boxoffice-atlas/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockExplorer struct {
	mock.Mock
}

func (m *mockExplorer) Summary(ctx context.Context) (domain.DatasetSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.DatasetSummary), args.Error(1)
}

func (m *mockExplorer) DefaultCriteria(ctx context.Context) (domain.FilterCriteria, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.FilterCriteria), args.Error(1)
}

func (m *mockExplorer) View(ctx context.Context, criteria domain.FilterCriteria) (*domain.View, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.View), args.Error(1)
}

var (
	defaultCriteria = domain.FilterCriteria{
		Genres: []string{"Action", "Comedy"},
		Years:  domain.YearRange{Min: 2000, Max: 2006},
	}
	summary = domain.DatasetSummary{
		Genres:       []string{"Action", "Comedy", "Drama"},
		Years:        domain.YearRange{Min: 1986, Max: 2006},
		RecordsCount: 12,
	}
)

func exampleView(criteria domain.FilterCriteria) *domain.View {
	return &domain.View{
		Criteria: criteria,
		Grid: domain.PivotGrid{
			Genres: []string{"Action", "Comedy"},
			Rows: []domain.PivotRow{
				{Year: 2002, Cells: map[string]float64{"Action": 200, "Comedy": 0}},
				{Year: 2001, Cells: map[string]float64{"Action": 100, "Comedy": 50}},
			},
		},
		Series: []domain.LongFormRow{
			{Year: 2001, Genre: "Action", Gross: 100},
			{Year: 2001, Genre: "Comedy", Gross: 50},
			{Year: 2002, Genre: "Action", Gross: 200},
			{Year: 2002, Genre: "Comedy", Gross: 0},
		},
		Totals: []domain.GenreTotal{
			{Genre: "Action", Gross: 300, Percentage: 85.714285714286},
			{Genre: "Comedy", Gross: 50, Percentage: 14.285714285714},
		},
		TotalGross: 350,
	}
}

func setupHandler(t *testing.T, explorer *mockExplorer) *Handler {
	templates, err := web.ParseTemplates()
	require.NoError(t, err)
	return NewHandler(explorer, templates)
}

func TestRevenue(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expected       domain.FilterCriteria
		expectedStatus int
	}{
		{
			name:           "defaults without parameters",
			query:          "",
			expected:       defaultCriteria,
			expectedStatus: http.StatusOK,
		},
		{
			name:  "explicit selection",
			query: "?genre=Drama&genre=Action&genre=Drama&from=2001&to=2002",
			expected: domain.FilterCriteria{
				Genres: []string{"Drama", "Action"},
				Years:  domain.YearRange{Min: 2001, Max: 2002},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "applied with no genre is an empty selection",
			query: "?applied=1&from=2001",
			expected: domain.FilterCriteria{
				Genres: []string{},
				Years:  domain.YearRange{Min: 2001, Max: 2006},
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			explorer := new(mockExplorer)
			explorer.On("DefaultCriteria", mock.Anything).Return(defaultCriteria, nil)
			explorer.On("View", mock.Anything, tt.expected).Return(exampleView(tt.expected), nil)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/revenue"+tt.query, nil)
			rec := httptest.NewRecorder()
			setupHandler(t, explorer).Revenue(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var response api.RevenueView
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
			assert.Equal(t, 350.0, response.TotalGross)
			assert.Equal(t, []string{"Action", "Comedy"}, response.Genres)
			assert.Equal(t, api.YearRange{From: tt.expected.Years.Min, To: tt.expected.Years.Max}, response.Criteria.Years)
			explorer.AssertExpectations(t)
		})
	}
}

func TestRevenue_BadRequests(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		setup    func(*mockExplorer)
		expected string
	}{
		{
			name:     "invalid from",
			query:    "?from=twothousand",
			expected: "invalid 'from' year. Expected an integer such as 2001\n",
		},
		{
			name:     "invalid to",
			query:    "?to=2001.5",
			expected: "invalid 'to' year. Expected an integer such as 2001\n",
		},
		{
			name:  "inverted range",
			query: "?from=2005&to=2001",
			setup: func(m *mockExplorer) {
				m.On("View", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: 2005 > 2001", dashboard.ErrInvalidRange))
			},
			expected: "'from' must not be after 'to'\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			explorer := new(mockExplorer)
			explorer.On("DefaultCriteria", mock.Anything).Return(defaultCriteria, nil)
			if tt.setup != nil {
				tt.setup(explorer)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/v1/revenue"+tt.query, nil)
			rec := httptest.NewRecorder()
			setupHandler(t, explorer).Revenue(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.expected, rec.Body.String())
		})
	}
}

func TestRevenue_DatasetFailure(t *testing.T) {
	explorer := new(mockExplorer)
	explorer.On("DefaultCriteria", mock.Anything).Return(domain.FilterCriteria{}, errors.New("missing file"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/revenue", nil)
	rec := httptest.NewRecorder()
	setupHandler(t, explorer).Revenue(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSummary(t *testing.T) {
	explorer := new(mockExplorer)
	explorer.On("Summary", mock.Anything).Return(summary, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/summary", nil)
	rec := httptest.NewRecorder()
	setupHandler(t, explorer).Summary(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var response api.Summary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, api.Summary{
		Genres:       []string{"Action", "Comedy", "Drama"},
		Years:        api.YearRange{From: 1986, To: 2006},
		RecordsCount: 12,
	}, response)
}

func TestIndex(t *testing.T) {
	explorer := new(mockExplorer)
	explorer.On("Summary", mock.Anything).Return(summary, nil)
	explorer.On("DefaultCriteria", mock.Anything).Return(defaultCriteria, nil)
	explorer.On("View", mock.Anything, defaultCriteria).Return(exampleView(defaultCriteria), nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	setupHandler(t, explorer).Index(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<option value="Action" selected>Action</option>`)
	assert.Contains(t, body, `<option value="Drama">Drama</option>`)
	assert.Contains(t, body, `min="1986"`)
	assert.Contains(t, body, "<td>2002</td><td>200</td><td>0</td>")
	assert.Contains(t, body, "Total: $350")
	assert.Contains(t, body, `/charts?applied=1&amp;from=2000&amp;genre=Action&amp;genre=Comedy&amp;to=2006`)
}

func TestIndex_EmptySelection(t *testing.T) {
	empty := domain.FilterCriteria{Genres: []string{}, Years: defaultCriteria.Years}

	explorer := new(mockExplorer)
	explorer.On("Summary", mock.Anything).Return(summary, nil)
	explorer.On("DefaultCriteria", mock.Anything).Return(defaultCriteria, nil)
	explorer.On("View", mock.Anything, empty).Return(&domain.View{Criteria: empty}, nil)

	req := httptest.NewRequest(http.MethodGet, "/?applied=1", nil)
	rec := httptest.NewRecorder()
	setupHandler(t, explorer).Index(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No revenue matches the current selection.")
	assert.NotContains(t, rec.Body.String(), "<iframe")
}

func TestCharts(t *testing.T) {
	explorer := new(mockExplorer)
	explorer.On("DefaultCriteria", mock.Anything).Return(defaultCriteria, nil)
	explorer.On("View", mock.Anything, defaultCriteria).Return(exampleView(defaultCriteria), nil)

	req := httptest.NewRequest(http.MethodGet, "/charts", nil)
	rec := httptest.NewRecorder()
	setupHandler(t, explorer).Charts(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Share of total revenue")
}
