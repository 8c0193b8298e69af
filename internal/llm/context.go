package llm

import "context"

type purposeKey struct{}

// WithPurpose labels the LLM calls made with ctx, e.g. "trivia-gen". The
// label ends up in the llm_events table.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the purpose label of ctx, or "unspecified".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unspecified"
}
