package gamescout

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Query accumulates path and query-string values for one API call.
type Query struct {
	Client *Client
	Path   string
	Values url.Values
}

func NewQuery(c *Client, format string, a ...interface{}) *Query {
	return &Query{
		Client: c,
		Path:   fmt.Sprintf(format, a...),
		Values: make(url.Values),
	}
}

func (q *Query) AddString(key string, value string) {
	q.Values.Add(key, value)
}

// AddStringIfNonEmpty skips empty values: the backend treats an
// empty filter the same as an absent one.
func (q *Query) AddStringIfNonEmpty(key string, value string) {
	if value != "" {
		q.AddString(key, value)
	}
}

func (q *Query) AddInt64(key string, value int64) {
	q.Values.Add(key, fmt.Sprintf("%d", value))
}

func (q *Query) AddInt64IfNonZero(key string, value int64) {
	if value != 0 {
		q.AddInt64(key, value)
	}
}

func (q *Query) URL() string {
	return q.Client.MakeValuesPath(q.Values, q.Path)
}

func (q *Query) Get(ctx context.Context, r interface{}) error {
	return q.Client.GetResponse(ctx, q.URL(), r)
}

func (q *Query) Post(ctx context.Context, payload interface{}, r interface{}) error {
	return q.Client.SendJSONResponse(ctx, http.MethodPost, q.URL(), payload, r)
}

func (q *Query) Patch(ctx context.Context, payload interface{}, r interface{}) error {
	return q.Client.SendJSONResponse(ctx, http.MethodPatch, q.URL(), payload, r)
}

func (q *Query) Delete(ctx context.Context, r interface{}) error {
	return q.Client.SendJSONResponse(ctx, http.MethodDelete, q.URL(), nil, r)
}
