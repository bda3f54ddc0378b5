package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLinkedInURL(t *testing.T) {
	assert.True(t, IsLinkedInURL("https://www.linkedin.com/jobs/view/123456"))
	assert.True(t, IsLinkedInURL("https://in.linkedin.com/jobs/view/123456"))
	assert.False(t, IsLinkedInURL("https://example.com/jobs/view/123456"))
	assert.False(t, IsLinkedInURL("https://notlinkedin.com/jobs"))
	assert.False(t, IsLinkedInURL(""))
}

func TestCanonicalLinkedInJobURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain view url",
			in:   "https://www.linkedin.com/jobs/view/4012345678",
			want: "https://www.linkedin.com/jobs/view/4012345678",
		},
		{
			name: "slugged view url with tracking",
			in:   "https://www.linkedin.com/jobs/view/senior-go-engineer-at-acme-4012345678/?refId=abc&trk=flagship3",
			want: "https://www.linkedin.com/jobs/view/4012345678",
		},
		{
			name: "collections url with currentJobId",
			in:   "https://www.linkedin.com/jobs/collections/recommended/?currentJobId=4012345678",
			want: "https://www.linkedin.com/jobs/view/4012345678",
		},
		{
			name: "regional subdomain",
			in:   "https://in.linkedin.com/jobs/view/4012345678/",
			want: "https://www.linkedin.com/jobs/view/4012345678",
		},
		{
			name: "non job path unchanged",
			in:   "https://www.linkedin.com/in/someone",
			want: "https://www.linkedin.com/in/someone",
		},
		{
			name: "non linkedin unchanged",
			in:   "https://www.naukri.com/job-listings-go-developer",
			want: "https://www.naukri.com/job-listings-go-developer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalLinkedInJobURL(tt.in))
		})
	}
}
