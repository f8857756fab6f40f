package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/sandwichproject/host-locator/internal/geocode"
	"github.com/sandwichproject/host-locator/internal/metrics"
	"github.com/sandwichproject/host-locator/internal/service"
)

// SearchHosts handles GET /api/hosts — the volunteer locator search.
//
// Query parameters: lat/lng (decimal degrees) or address (geocoded
// server-side), area (exact match, "all" disables), q (text search),
// include_unavailable=true to keep paused hosts.
func (s *Server) SearchHosts(w http.ResponseWriter, r *http.Request) {
	criteria, err := searchCriteriaFromQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	hosts, err := s.locator.Search(r.Context(), criteria)
	if err != nil {
		if errors.Is(err, geocode.ErrNoResults) {
			metrics.GeocodeErrorsTotal.Inc()
			writeJSON(w, http.StatusNotFound, notFoundBody("address not found"))
			return
		}
		writeServiceError(w, r, err, "host")
		return
	}

	metrics.LocatorSearchesTotal.Inc()
	writeJSON(w, http.StatusOK, hosts)
}

// searchCriteriaFromQuery parses the locator query parameters. lat and lng
// must be supplied together and parse as floats; everything else is optional.
func searchCriteriaFromQuery(r *http.Request) (service.SearchCriteria, error) {
	q := r.URL.Query()
	c := service.SearchCriteria{
		Address:            q.Get("address"),
		Area:               q.Get("area"),
		Query:              q.Get("q"),
		IncludeUnavailable: q.Get("include_unavailable") == "true",
	}

	latRaw, lngRaw := q.Get("lat"), q.Get("lng")
	if latRaw == "" && lngRaw == "" {
		return c, nil
	}
	if latRaw == "" || lngRaw == "" {
		return service.SearchCriteria{}, errors.New("lat and lng must be supplied together")
	}

	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return service.SearchCriteria{}, errors.New("lat must be a decimal number")
	}
	lng, err := strconv.ParseFloat(lngRaw, 64)
	if err != nil {
		return service.SearchCriteria{}, errors.New("lng must be a decimal number")
	}
	c.Lat, c.Lng = &lat, &lng
	return c, nil
}
