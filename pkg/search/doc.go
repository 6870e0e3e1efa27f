// Package search is the boundary to the social-media search service.
//
// A Service turns a query string into a lazy sequence of posts. Client talks
// to a JSON endpoint of the form
//
//	GET {endpoint}/search?q={query}&cursor={cursor}
//
// which answers with
//
//	{"posts": [{"id": ..., "raw_content": ..., "username": ..., "media": [...]}],
//	 "next_cursor": "..."}
//
// Pages are requested until next_cursor is empty. Requests are paced by a
// token bucket and a failed page ends the sequence with an *errors.Error.
package search
