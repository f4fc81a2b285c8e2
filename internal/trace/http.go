package trace

import "net/http"

// Middleware attaches a trace context to each request, continuing a trace
// propagated via headers or starting a new one.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tc := Context{
			TraceID:      r.Header.Get(TraceIDHeader),
			SpanID:       newID(8),
			ParentSpanID: r.Header.Get(SpanIDHeader),
		}
		if tc.TraceID == "" {
			tc = New()
		}
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), tc)))
	})
}
