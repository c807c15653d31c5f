// Package api holds the per-service endpoint builders. Each builder only
// constructs paths and bodies and delegates the hard parts (auth, dedup,
// caching, error translation) to the request engine.
package api

import (
	"net/url"
	"strconv"
	"strings"
)

// Page is the common pagination query shape.
type Page struct {
	Page  int
	Limit int
}

func (p Page) values() url.Values {
	values := url.Values{}
	if p.Page > 0 {
		values.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		values.Set("limit", strconv.Itoa(p.Limit))
	}
	return values
}

// Pagination is the envelope the backend wraps list data in.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

func withQuery(path string, values url.Values) string {
	encoded := values.Encode()
	if encoded == "" {
		return path
	}
	return path + "?" + encoded
}

// AssetBases resolves relative asset paths the way the web client does:
// user avatars live on the user service, everything else on the content
// host, and OSS paths already route through the gateway.
type AssetBases struct {
	Static     string
	UserStatic string
}

func (b AssetBases) AssetURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http") {
		return path
	}
	if strings.HasPrefix(path, "/oss/") {
		return path
	}
	if strings.Contains(path, "/avatars/") {
		return b.UserStatic + path
	}
	return b.Static + path
}
