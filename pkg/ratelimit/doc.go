// Package ratelimit paces outbound requests.
//
// Two implementations share the Limiter interface:
//
// Token Bucket:
//   - Backed by golang.org/x/time/rate
//   - Used by the search client to cap requests per minute
//
// Fixed Delay:
//   - An unconditional pause between steps, with no backoff
//   - Used between search results and between downloads
//
// Usage:
//
//	limiter := ratelimit.NewPerMinute(60)
//	if err := limiter.Wait(ctx); err != nil {
//	    return err
//	}
//
//	pause := ratelimit.NewFixedDelay(500 * time.Millisecond)
//	_ = pause.Wait(ctx)
package ratelimit
