package handler

import (
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abdulhamidaa6024/backend-afterschool/internal/service"
)

type updateSpacesRequest struct {
	Spaces *float64 `json:"spaces"`
}

func ListLessonsHandler(catalog *service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lessons, err := catalog.List(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Could not fetch lessons")
			return
		}
		writeJSON(w, http.StatusOK, lessons)
	}
}

func SearchHandler(catalog *service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		if query == "" {
			writeError(w, http.StatusBadRequest, "Search query is required")
			return
		}

		lessons, err := catalog.Search(r.Context(), query)
		if err != nil {
			writeServiceError(w, r, err, "Error searching lessons")
			return
		}
		writeJSON(w, http.StatusOK, lessons)
	}
}

func UpdateLessonHandler(catalog *service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateSpacesRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid input")
			return
		}

		spaces, ok := wholeSpaces(req.Spaces)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid input")
			return
		}

		if err := catalog.UpdateSpaces(r.Context(), chi.URLParam(r, "id"), spaces); err != nil {
			writeServiceError(w, r, err, "Error updating lesson")
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: "Lesson updated"})
	}
}

// wholeSpaces accepts only non-negative integral numbers that fit the
// storage column.
func wholeSpaces(v *float64) (int, bool) {
	if v == nil || *v < 0 || *v != math.Trunc(*v) || *v > math.MaxInt32 {
		return 0, false
	}
	return int(*v), true
}
