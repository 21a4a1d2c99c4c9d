package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveImageURL(t *testing.T) {
	base := "https://project.supabase.co/"

	tests := []struct {
		name string
		path string
		want string
	}{
		{"empty", "", PlaceholderURL},
		{"blank", "   ", PlaceholderURL},
		{"absolute https", "https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"absolute http", "http://cdn.example.com/a.jpg", "http://cdn.example.com/a.jpg"},
		{"relative", "host1/casa.jpg", "https://project.supabase.co/storage/v1/object/public/listing-images/host1/casa.jpg"},
		{"leading slash", "/host1/casa.jpg", "https://project.supabase.co/storage/v1/object/public/listing-images/host1/casa.jpg"},
		{"escaped", "host1/casa rural.jpg", "https://project.supabase.co/storage/v1/object/public/listing-images/host1/casa%20rural.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveImageURL(base, "listing-images", tt.path))
		})
	}
}

func TestResolveImageURLWithoutStorageBase(t *testing.T) {
	assert.Equal(t, PlaceholderURL, ResolveImageURL("", "listing-images", "a.jpg"))
}

func TestResolveImageURLs(t *testing.T) {
	assert.Equal(t, []string{PlaceholderURL}, ResolveImageURLs("https://x.co", "b", nil))
	assert.Equal(t, []string{PlaceholderURL}, ResolveImageURLs("https://x.co", "b", []string{"", " "}))
	assert.Equal(t,
		[]string{"https://x.co/storage/v1/object/public/b/1.jpg", "https://cdn/2.jpg"},
		ResolveImageURLs("https://x.co", "b", []string{"1.jpg", "", "https://cdn/2.jpg"}),
	)
}
