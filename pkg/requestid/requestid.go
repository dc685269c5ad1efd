// Package requestid carries the request correlation id through contexts so
// downstream logs and emitted events can be tied back to the originating
// call.
package requestid

import "context"

type ctxKey struct{}

// NewContext returns a context carrying the request id. Empty ids are not
// stored.
func NewContext(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the request id carried by ctx, if any.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}
