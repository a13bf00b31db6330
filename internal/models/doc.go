// Package models defines the records that flow through a coverwall run.
//
// # Input
//
//   - [InputDescriptor] : one artist, playlist or show plus presentation hints for the front-end
//   - [LoadDescriptors] : reads and validates the descriptor file
//
// # Output
//
//   - [NormalizedItem] : uniform shape for albums, playlist-derived albums and episodes
//   - [ArtistLikeOutput] : descriptor metadata merged with the resolved name and images
//   - [RetrievalResult] : what gets written to disk for one descriptor
//
// Ignore lists are always non-nil after loading, so callers never check for nil.
package models
