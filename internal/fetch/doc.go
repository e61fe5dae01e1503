// Package fetch downloads referenced images to the local image folder.
//
// The Fetcher handles a single reference with bounded retries, a fixed
// delay between attempts, two-tier extension inference (URL suffix, then
// content-type) and an idempotent skip of files that already exist. The
// Batch type drives the Fetcher over a full reference list sequentially,
// tallying successes; per-item failures never abort the remaining items.
package fetch
