package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/de-tools/boxoffice-atlas/pkg/adapters"
	"github.com/de-tools/boxoffice-atlas/pkg/charts"
	"github.com/de-tools/boxoffice-atlas/pkg/models/domain"
	"github.com/de-tools/boxoffice-atlas/pkg/services/dashboard"
	"github.com/rs/zerolog"
)

const (
	paramGenre   = "genre"
	paramFrom    = "from"
	paramTo      = "to"
	paramApplied = "applied"
)

type Handler struct {
	explorer  dashboard.Explorer
	templates *template.Template
}

func NewHandler(explorer dashboard.Explorer, templates *template.Template) *Handler {
	return &Handler{
		explorer:  explorer,
		templates: templates,
	}
}

type genreOption struct {
	Name     string
	Selected bool
}

type pageData struct {
	Genres    []genreOption
	Bounds    domain.YearRange
	Criteria  domain.FilterCriteria
	View      *domain.View
	ChartsURL template.URL
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	summary, err := h.explorer.Summary(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load dataset summary")
		http.Error(w, "dataset unavailable", http.StatusInternalServerError)
		return
	}

	criteria, view, ok := h.view(w, r)
	if !ok {
		return
	}

	options := make([]genreOption, 0, len(summary.Genres))
	for _, g := range summary.Genres {
		options = append(options, genreOption{Name: g, Selected: criteria.HasGenre(g)})
	}

	data := pageData{
		Genres:    options,
		Bounds:    summary.Years,
		Criteria:  criteria,
		View:      view,
		ChartsURL: template.URL("/charts?" + encodeCriteria(criteria).Encode()),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "dashboard_page", data); err != nil {
		logger.Error().Err(err).Msg("failed to render dashboard")
	}
}

func (h *Handler) Charts(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	_, view, ok := h.view(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := charts.Render(w, *view); err != nil {
		logger.Error().Err(err).Msg("failed to render charts")
	}
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	summary, err := h.explorer.Summary(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load dataset summary")
		http.Error(w, "dataset unavailable", http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, adapters.MapDomainSummaryToAPI(summary))
}

func (h *Handler) Revenue(w http.ResponseWriter, r *http.Request) {
	_, view, ok := h.view(w, r)
	if !ok {
		return
	}

	writeJSON(w, r, adapters.MapDomainViewToAPI(*view))
}

// view is the "controls changed" event: it reads the selection from the request
// and recomputes the whole pipeline. On failure the response is already written.
func (h *Handler) view(w http.ResponseWriter, r *http.Request) (domain.FilterCriteria, *domain.View, bool) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	defaults, err := h.explorer.DefaultCriteria(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to resolve default selection")
		http.Error(w, "dataset unavailable", http.StatusInternalServerError)
		return domain.FilterCriteria{}, nil, false
	}

	criteria, err := parseCriteria(r.URL.Query(), defaults)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return domain.FilterCriteria{}, nil, false
	}

	view, err := h.explorer.View(ctx, criteria)
	if err != nil {
		if errors.Is(err, dashboard.ErrInvalidRange) {
			http.Error(w, "'from' must not be after 'to'", http.StatusBadRequest)
			return domain.FilterCriteria{}, nil, false
		}
		logger.Error().Err(err).Msg("failed to compute view")
		http.Error(w, "failed to compute view", http.StatusInternalServerError)
		return domain.FilterCriteria{}, nil, false
	}
	return criteria, view, true
}

// parseCriteria reads genre (repeatable), from and to. Without "applied" an absent
// genre list means "use the defaults"; with it, it means an empty selection.
func parseCriteria(q url.Values, defaults domain.FilterCriteria) (domain.FilterCriteria, error) {
	criteria := domain.FilterCriteria{
		Genres: slices.Clone(defaults.Genres),
		Years:  defaults.Years,
	}

	genres := q[paramGenre]
	if len(genres) > 0 || q.Get(paramApplied) != "" {
		criteria.Genres = make([]string, 0, len(genres))
		for _, g := range genres {
			if g != "" && !slices.Contains(criteria.Genres, g) {
				criteria.Genres = append(criteria.Genres, g)
			}
		}
	}

	var err error
	if criteria.Years.Min, err = parseYear(q, paramFrom, defaults.Years.Min); err != nil {
		return domain.FilterCriteria{}, err
	}
	if criteria.Years.Max, err = parseYear(q, paramTo, defaults.Years.Max); err != nil {
		return domain.FilterCriteria{}, err
	}
	return criteria, nil
}

func parseYear(q url.Values, param string, fallback int) (int, error) {
	raw := q.Get(param)
	if raw == "" {
		return fallback, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid '%s' year. Expected an integer such as 2001", param)
	}
	return year, nil
}

func encodeCriteria(criteria domain.FilterCriteria) url.Values {
	q := url.Values{}
	q.Set(paramApplied, "1")
	for _, g := range criteria.Genres {
		q.Add(paramGenre, g)
	}
	q.Set(paramFrom, strconv.Itoa(criteria.Years.Min))
	q.Set(paramTo, strconv.Itoa(criteria.Years.Max))
	return q
}

func writeJSON(w http.ResponseWriter, r *http.Request, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}
