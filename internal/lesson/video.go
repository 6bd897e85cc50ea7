package lesson

import "strings"

const embedBase = "https://www.youtube.com/embed/"

// EmbedURL converts a YouTube watch or short link into its embeddable form.
// Other URLs are returned unchanged.
func EmbedURL(url string) string {
	if url == "" {
		return ""
	}

	if _, rest, ok := strings.Cut(url, "youtu.be/"); ok {
		id, _, _ := strings.Cut(rest, "?")
		return embedBase + id + "?controls=1&playsinline=1"
	}
	if _, rest, ok := strings.Cut(url, "watch?v="); ok {
		id, _, _ := strings.Cut(rest, "&")
		return embedBase + id + "?controls=1&playsinline=1"
	}

	return url
}
