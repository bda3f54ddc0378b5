package utils

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var linkedinJobViewRe = regexp.MustCompile(`^/jobs/view/(?:[^/]*-)?(\d+)/?$`)

// IsLinkedInURL checks if a URL belongs to linkedin.com
func IsLinkedInURL(urlStr string) bool {
	if urlStr == "" {
		return false
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return false
	}

	hostname := strings.ToLower(parsedURL.Hostname())
	return hostname == "linkedin.com" || strings.HasSuffix(hostname, ".linkedin.com")
}

// CanonicalLinkedInJobURL reduces the various LinkedIn job URL shapes, view
// paths with slugs or collection pages with a currentJobId parameter, to the
// public job view form without tracking parameters. URLs that do not carry a
// job ID come back unchanged.
func CanonicalLinkedInJobURL(urlStr string) string {
	if !IsLinkedInURL(urlStr) {
		return urlStr
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return urlStr
	}

	if matches := linkedinJobViewRe.FindStringSubmatch(parsedURL.Path); len(matches) > 1 {
		return fmt.Sprintf("https://www.linkedin.com/jobs/view/%s", matches[1])
	}

	if strings.HasPrefix(parsedURL.Path, "/jobs/collections/") {
		if jobID := parsedURL.Query().Get("currentJobId"); jobID != "" && isDigits(jobID) {
			return fmt.Sprintf("https://www.linkedin.com/jobs/view/%s", jobID)
		}
	}

	return urlStr
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
