package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"photofeed/internal/ranking"
)

// PageResponse is a page of results with links to its neighbours.
type PageResponse struct {
	Count    int         `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

func parsePaging(r *http.Request) ranking.Paging {
	q := r.URL.Query()
	number, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("page_size"))
	return ranking.NewPaging(number, size)
}

func newPageResponse(r *http.Request, p ranking.Paging, count int, hasNext bool, results interface{}) PageResponse {
	resp := PageResponse{Count: count, Results: results}
	if hasNext {
		resp.Next = pageLink(r, p.Number+1)
	}
	if p.Number > 1 {
		resp.Previous = pageLink(r, p.Number-1)
	}
	return resp
}

// pageLink rebuilds the request URL pointing at another page. The first
// page drops the parameter.
func pageLink(r *http.Request, number int) *string {
	u := url.URL{Scheme: "http", Host: r.Host, Path: r.URL.Path}
	if r.TLS != nil {
		u.Scheme = "https"
	}

	q := r.URL.Query()
	if number <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(number))
	}
	u.RawQuery = q.Encode()

	link := u.String()
	return &link
}

// pathID reads a positive integer path variable.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	return id, err == nil && id > 0
}
