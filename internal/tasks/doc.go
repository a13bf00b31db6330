// Package tasks turns a list of input descriptors into retrieval results with real-time progress reporting.
//
// # Core Operations
//
// [Batch.Run] walks the descriptors in order. Each one is dispatched by type to a [Retriever]:
//
//  1. [ArtistRetriever] : artist details plus every album the artist appears on
//  2. [PlaylistRetriever] : playlist details plus the album behind every track
//     - local files are skipped
//     - an episode inside the playlist fails the descriptor
//  3. [ShowRetriever] : show details plus every episode
//
// Items are normalized, deduplicated by id (first occurrence wins) and then filtered by the
// descriptor's ignore lists.
//
// # Rate Limits
//
// Every catalog call, including each follow-up page fetch in [CollectAll], runs through
// [Execute]. A throttled call waits the server's Retry-After plus a fixed padding and is
// retried, up to [DefaultMaxAttempts] attempts in total.
//
// # Failures
//
// A failed descriptor does not stop the batch. Failures are prefixed with the descriptor's
// httpFriendlyShortName and joined into one error; when any descriptor fails no results
// are returned.
//
// # Progress Reporting
//
// The [ProgressUpdate] struct contains phase, step counters and a message.
// Updates use select with default to prevent blocking.
package tasks
