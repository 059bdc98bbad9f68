package handling

import (
	"lojastreet_server/structs"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cast"
)

// ParseCatalogFilter reads the listing filters from the query string.
// Malformed values are treated as absent. includeInactive is copied as sent;
// callers decide whether the requester may use it.
func ParseCatalogFilter(r *http.Request) structs.CatalogFilter {
	query := r.URL.Query()

	filter := structs.CatalogFilter{
		Category:        strings.TrimSpace(query.Get("category")),
		Featured:        queryBool(query.Get("featured")),
		Discounted:      queryBool(query.Get("discounted")),
		IncludeInactive: queryBool(query.Get("includeInactive")),
	}

	if limit, err := strconv.Atoi(strings.TrimSpace(query.Get("limit"))); err == nil && limit > 0 {
		filter.Limit = limit
	}

	return filter
}

func queryBool(v string) bool {
	b, err := cast.ToBoolE(strings.TrimSpace(v))
	return err == nil && b
}

// ParseID reads a positive decimal integer path parameter.
func ParseID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(chi.URLParam(r, name)), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
