package http

import "net/http"

// The gateway in front of this service authenticates callers and injects
// the verified principal here; the core never sees credentials.
const principalHeader = "X-Principal"

func principalFrom(r *http.Request) string {
	return r.Header.Get(principalHeader)
}
