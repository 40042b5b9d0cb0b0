package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bharat3214/Genei/internal/server/models"
)

// pathID parses a positive integer URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return id, nil
}

// pageParams reads limit and offset from the query string. Missing values
// fall back to defaultLimit and 0; limit may not exceed maxLimit.
func pageParams(r *http.Request, defaultLimit, maxLimit int) (models.Page, error) {
	page := models.Page{Limit: defaultLimit}
	q := r.URL.Query()

	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		// A zero limit would mean "unbounded" to the store.
		if err != nil || n < 1 || n > maxLimit {
			return page, fmt.Errorf("limit must be an integer between 1 and %d", maxLimit)
		}
		page.Limit = n
	}
	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return page, fmt.Errorf("offset must be a non-negative integer")
		}
		page.Offset = n
	}
	return page, nil
}

func listPage(r *http.Request) (models.Page, error) {
	return pageParams(r, models.DefaultPageLimit, models.MaxPageLimit)
}

func conversationPage(r *http.Request) (models.Page, error) {
	return pageParams(r, models.DefaultConversationLimit, models.MaxConversationLimit)
}
