package forge

import (
	"net/url"
	"strconv"
	"strings"
)

// parseLastPage extracts the "page" query parameter from the link
// tagged rel="last" in an RFC 5988 Link header. It tolerates multiple
// comma-separated links and both query-parameter orderings
// ("other=...&page=N" and "page=N&other=..."). Returns (0, false) when
// no rel="last" link is present.
func parseLastPage(linkHeader string) (int, bool) {
	if linkHeader == "" {
		return 0, false
	}

	for _, part := range strings.Split(linkHeader, ",") {
		part = strings.TrimSpace(part)
		if !strings.Contains(part, `rel="last"`) {
			continue
		}

		start := strings.Index(part, "<")
		end := strings.Index(part, ">")
		if start == -1 || end == -1 || end <= start {
			continue
		}

		rawURL := part[start+1 : end]
		u, err := url.Parse(rawURL)
		if err != nil {
			continue
		}

		page := u.Query().Get("page")
		if page == "" {
			continue
		}

		n, err := strconv.Atoi(page)
		if err != nil {
			continue
		}

		return n, true
	}

	return 0, false
}
