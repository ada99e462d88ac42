package service

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// SafeRedirect returns next when it is a local path, else fallback, with c=<id> set on the query
func SafeRedirect(next, fallback string, id int64) string {
	target := fallback
	if isLocal(next) {
		target = next
	}
	u, err := url.Parse(target)
	if err != nil {
		u = &url.URL{Path: fallback}
	}
	q := u.Query()
	q.Set("c", strconv.FormatInt(id, 10))
	u.RawQuery = q.Encode()
	return u.String()
}

func isLocal(next string) bool {
	next = strings.TrimSpace(next)
	if next == "" || strings.HasPrefix(next, "//") || strings.HasPrefix(next, `/\`) || strings.ContainsAny(next, "\r\n\t") {
		return false
	}
	u, err := url.Parse(next)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == "" && u.User == nil
}

// FormTarget renders a form target pattern for the comment id
func FormTarget(pattern string, id int64) string {
	if strings.Contains(pattern, "%d") {
		return fmt.Sprintf(pattern, id)
	}
	return strings.TrimSuffix(pattern, "/") + "/" + strconv.FormatInt(id, 10)
}
