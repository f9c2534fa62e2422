// Package config provides a thin typed accessor over a durable
// key/value namespace backed by the store's config table
// (spec.md §4.2).
//
// Store seeds any missing default key on construction and never
// caches: reads hit the database directly, since the access rate (once
// per worker poll iteration) does not warrant the complexity of a
// cache invalidation story.
package config
