package handler

import (
	"net/http"
	"strconv"

	"github.com/sandwichproject/host-locator/internal/domain"
)

// actorHeader names the request header carrying the admin identity recorded
// in the audit trail. Empty falls back to "admin" in the service layer.
const actorHeader = "X-Admin-User"

// hostRequest is the JSON body for create and update.
type hostRequest struct {
	Name              string  `json:"name"`
	Area              string  `json:"area"`
	Neighborhood      string  `json:"neighborhood"`
	Phone             string  `json:"phone"`
	Hours             string  `json:"hours"`
	Notes             string  `json:"notes"`
	Lat               float64 `json:"lat"`
	Lng               float64 `json:"lng"`
	OpenTime          string  `json:"open_time"`
	CloseTime         string  `json:"close_time"`
	ThursdayOpenTime  string  `json:"thursday_open_time"`
	ThursdayCloseTime string  `json:"thursday_close_time"`
	Available         *bool   `json:"available"`
}

// pagedHostsResponse is the envelope for the paged admin listing.
type pagedHostsResponse struct {
	Data       []domain.Host `json:"data"`
	Pagination pagination    `json:"pagination"`
}

type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// CreateHost handles POST /api/hosts.
func (s *Server) CreateHost(w http.ResponseWriter, r *http.Request) {
	var req hostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid request body: "+err.Error()))
		return
	}

	created, err := s.hosts.Create(r.Context(), requestToHost(req, 0), r.Header.Get(actorHeader))
	if err != nil {
		writeServiceError(w, r, err, "host")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListHosts handles GET /api/hosts/all — the paged admin listing.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListHosts(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))
	hosts, total, err := s.hosts.ListPaged(r.Context(), params)
	if err != nil {
		writeServiceError(w, r, err, "host")
		return
	}

	writeJSON(w, http.StatusOK, pagedHostsResponse{
		Data: hosts,
		Pagination: pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// GetHost handles GET /api/hosts/{id}.
func (s *Server) GetHost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, notFoundBody("host not found"))
		return
	}

	host, err := s.hosts.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "host")
		return
	}
	writeJSON(w, http.StatusOK, host)
}

// UpdateHost handles PUT /api/hosts/{id}.
func (s *Server) UpdateHost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, notFoundBody("host not found"))
		return
	}

	var req hostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid request body: "+err.Error()))
		return
	}

	updated, err := s.hosts.Update(r.Context(), requestToHost(req, id), r.Header.Get(actorHeader))
	if err != nil {
		writeServiceError(w, r, err, "host")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteHost handles DELETE /api/hosts/{id}.
func (s *Server) DeleteHost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, notFoundBody("host not found"))
		return
	}

	if err := s.hosts.Delete(r.Context(), id, r.Header.Get(actorHeader)); err != nil {
		writeServiceError(w, r, err, "host")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListHostChanges handles GET /api/hosts/{id}/changes — the audit trail.
func (s *Server) ListHostChanges(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, notFoundBody("host not found"))
		return
	}

	changes, err := s.hosts.Changes(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "host")
		return
	}
	writeJSON(w, http.StatusOK, changes)
}

// --- mapping helpers --------------------------------------------------------

// requestToHost converts a request body into a domain.Host, preserving the
// path ID for updates. An absent "available" field defaults to true — new
// hosts accept drop-offs unless the admin says otherwise.
func requestToHost(req hostRequest, id int64) domain.Host {
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	return domain.Host{
		ID:                id,
		Name:              req.Name,
		Area:              req.Area,
		Neighborhood:      req.Neighborhood,
		Phone:             req.Phone,
		Hours:             req.Hours,
		Notes:             req.Notes,
		Lat:               req.Lat,
		Lng:               req.Lng,
		OpenTime:          req.OpenTime,
		CloseTime:         req.CloseTime,
		ThursdayOpenTime:  req.ThursdayOpenTime,
		ThursdayCloseTime: req.ThursdayCloseTime,
		Available:         available,
	}
}

// queryInt parses an optional integer query parameter, returning nil when
// absent or malformed.
func queryInt(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}
