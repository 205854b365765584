package audit

import "context"

// Provenance identifies where a request came from.
type Provenance struct {
	IPAddress string
	SessionID string
	UserAgent string
}

type provenanceKey struct{}

func WithProvenance(ctx context.Context, p Provenance) context.Context {
	return context.WithValue(ctx, provenanceKey{}, p)
}

// ProvenanceFrom returns the provenance stored in ctx, or the zero value.
func ProvenanceFrom(ctx context.Context) Provenance {
	p, _ := ctx.Value(provenanceKey{}).(Provenance)
	return p
}
