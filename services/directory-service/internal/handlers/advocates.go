package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/md-rashed-zaman/advobook/services/directory-service/internal/model"
)

type advocateDTO struct {
	ID                int64    `json:"id"`
	FirstName         string   `json:"firstName"`
	LastName          string   `json:"lastName"`
	City              string   `json:"city"`
	Degree            string   `json:"degree"`
	Specialties       []string `json:"specialties"`
	YearsOfExperience int      `json:"yearsOfExperience"`
	PhoneNumber       int64    `json:"phoneNumber"`
	CreatedAt         string   `json:"createdAt"`
}

type advocatePageDTO struct {
	Results    []advocateDTO `json:"results"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalCount int           `json:"totalCount"`
	TotalPages int           `json:"totalPages"`
}

// positiveIntQuery reads a query parameter as a positive integer,
// falling back on missing, unparsable, zero and negative values alike.
func positiveIntQuery(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// ListAdvocates serves GET /advocates?search=&page=&pageSize=.
func (h *DirectoryHandler) ListAdvocates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	page := positiveIntQuery(r, "page", 1)
	pageSize := positiveIntQuery(r, "pageSize", 10)
	search := r.URL.Query().Get("search")

	advocates, total, err := h.advocates.Search(r.Context(), page, pageSize, search)
	if err != nil {
		h.logger.Error("advocate search failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch advocates")
		return
	}

	results := make([]advocateDTO, 0, len(advocates))
	for _, a := range advocates {
		results = append(results, toAdvocateDTO(a))
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	writeJSON(w, http.StatusOK, advocatePageDTO{
		Results:    results,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: totalPages,
	})
}

func toAdvocateDTO(a model.Advocate) advocateDTO {
	specialties := a.Specialties
	if specialties == nil {
		specialties = []string{}
	}
	return advocateDTO{
		ID:                a.ID,
		FirstName:         a.FirstName,
		LastName:          a.LastName,
		City:              a.City,
		Degree:            a.Degree,
		Specialties:       specialties,
		YearsOfExperience: a.YearsOfExperience,
		PhoneNumber:       a.PhoneNumber,
		CreatedAt:         a.CreatedAt.Format(time.RFC3339),
	}
}
