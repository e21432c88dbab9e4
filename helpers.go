package guidebook

import (
	"bytes"
	"context"
	"net/url"
	"path"

	"github.com/a-h/templ"
)

// BuildURL joins a base URL with path segments. Guide URLs are canonical
// without a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String()
}

// renderToString renders cmp for embedding in a JSON frame.
func renderToString(ctx context.Context, cmp templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := cmp.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
