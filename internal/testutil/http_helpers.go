package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

// NewRouteRequest builds a request for a chi route pattern without running the router.
//
// Every {name} placeholder in pattern is replaced by the path-escaped value of
// urlParams[name], and the raw value is exposed to chi.URLParam. queryParams
// end up in r.URL.Query(). Either map may be nil.
//
// Example:
//
//	req := testutil.NewRouteRequest(
//	    http.MethodGet,
//	    "/api/market/{assetId}/history",
//	    map[string]string{"assetId": "bitcoin"},
//	    map[string]string{"window": "7d"},
//	)
//	// req.URL: /api/market/bitcoin/history?window=7d
func NewRouteRequest(method, pattern string, urlParams, queryParams map[string]string) *http.Request {
	path := pattern
	for key, value := range urlParams {
		path = strings.ReplaceAll(path, "{"+key+"}", url.PathEscape(value))
	}

	req := httptest.NewRequest(method, path, nil)

	if len(urlParams) > 0 {
		rctx := chi.NewRouteContext()
		rctx.RoutePatterns = append(rctx.RoutePatterns, pattern)
		for key, value := range urlParams {
			rctx.URLParams.Add(key, value)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	if len(queryParams) > 0 {
		q := req.URL.Query()
		for key, value := range queryParams {
			q.Add(key, value)
		}
		req.URL.RawQuery = q.Encode()
	}

	return req
}

// NewRequestWithURLParams creates a request whose chi URL parameters are set.
//
// Example:
//
//	req := testutil.NewRequestWithURLParams(
//	    http.MethodDelete,
//	    "/api/portfolio/assets/{uuid}",
//	    map[string]string{"uuid": asset.ID},
//	)
func NewRequestWithURLParams(method, path string, params map[string]string) *http.Request {
	return NewRouteRequest(method, path, params, nil)
}

// NewRequestWithQueryParams creates a request carrying a query string.
//
// Example:
//
//	req := testutil.NewRequestWithQueryParams(
//	    http.MethodGet,
//	    "/api/market",
//	    map[string]string{"limit": "5", "search": "eth"},
//	)
func NewRequestWithQueryParams(method, path string, queryParams map[string]string) *http.Request {
	return NewRouteRequest(method, path, nil, queryParams)
}
