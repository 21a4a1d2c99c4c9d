package supabase

import (
	"strings"

	"github.com/supabase-community/gotrue-go"
)

// AuthAdmin talks to the platform auth service with the service key. It
// backs the admin debug panel only.
type AuthAdmin struct {
	client gotrue.Client
}

// NewAuthAdmin targets <project>.supabase.co projects by reference and any
// other host (self-hosted, local) by its /auth/v1 URL.
func NewAuthAdmin(supabaseURL, serviceKey string) *AuthAdmin {
	ref, hosted := projectRef(supabaseURL)
	client := gotrue.New(ref, serviceKey)
	if !hosted {
		client = client.WithCustomGoTrueURL(strings.TrimRight(supabaseURL, "/") + "/auth/v1")
	}
	return &AuthAdmin{client: client}
}

// Settings returns the public auth settings, which doubles as a health probe.
func (a *AuthAdmin) Settings() (interface{}, error) {
	return a.client.GetSettings()
}

// projectRef extracts "abc" from https://abc.supabase.co.
func projectRef(url string) (string, bool) {
	host := strings.TrimPrefix(strings.TrimPrefix(url, "https://"), "http://")
	host = strings.TrimRight(host, "/")
	if !strings.HasSuffix(host, ".supabase.co") {
		return host, false
	}
	return strings.SplitN(host, ".", 2)[0], true
}
