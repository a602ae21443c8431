package forcehttps

// Option is a functional option for configuring ForceHTTPS
type Option func(*ForceHTTPS)

// WithHTTPSPort sets the port used in redirect targets, replacing whatever
// port the request arrived on. Useful when the HTTPS listener is not on 443
// behind the same host name.
func WithHTTPSPort(port int) Option {
	return func(f *ForceHTTPS) {
		f.port = port
	}
}

// WithFilter restricts which requests are upgraded; requests the filter
// rejects are served over plain HTTP.
func WithFilter(filter Filter) Option {
	return func(f *ForceHTTPS) {
		f.filter = filter
	}
}
