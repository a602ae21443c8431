// Package forcehttps provides HTTP middleware that redirects plain HTTP
// requests to HTTPS with a 308 permanent redirect.
//
// The redirect preserves the request path and query. Requests that already
// arrived over TLS are passed through, so the middleware is safe to mount
// unconditionally in front of a handler serving both listeners.
//
// # Usage
//
//	fh := forcehttps.New(forcehttps.WithHTTPSPort(8443))
//
//	mux := http.NewServeMux()
//	mux.Handle("/", appHandler)
//
//	http.ListenAndServe(":8080", fh.Middleware(mux))
//
// A filter can exempt requests that must stay on plain HTTP, such as ACME
// HTTP-01 challenges:
//
//	fh := forcehttps.New(forcehttps.WithFilter(func(r *http.Request) bool {
//		return !strings.HasPrefix(r.URL.Path, "/.well-known/acme-challenge/")
//	}))
package forcehttps
