package session

import (
	"net/http"
)

// Middleware wires the session lifecycle around the next handler: the
// request's session is resolved up front and placed in the context, and the
// persistence decision runs exactly once on the way out: just before the
// first byte of the response is written (so the Set-Cookie header can still
// go out), or after the chain returns, whichever comes first.
func (h *Handler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slot := &sessionSlot{sess: h.begin(r)}
		r = r.WithContext(withSlot(r.Context(), slot))

		cw := &commitWriter{
			ResponseWriter: w,
			handler:        h,
			request:        r,
			slot:           slot,
		}

		next.ServeHTTP(cw, r)
		cw.commit()
	})
}

// commitWriter delays the session commit until the response is about to be
// written, because cookies are headers and headers are gone once the body
// starts.
type commitWriter struct {
	http.ResponseWriter
	handler   *Handler
	request   *http.Request
	slot      *sessionSlot
	committed bool
}

func (w *commitWriter) commit() {
	if w.committed {
		return
	}
	w.committed = true
	w.handler.commit(w.ResponseWriter, w.request, w.slot)
}

func (w *commitWriter) WriteHeader(code int) {
	w.commit()
	w.ResponseWriter.WriteHeader(code)
}

func (w *commitWriter) Write(b []byte) (int, error) {
	w.commit()
	return w.ResponseWriter.Write(b)
}

func (w *commitWriter) Flush() {
	w.commit()
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap supports http.ResponseController.
func (w *commitWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
