// Package content defines the content model carried by UI components: a map of
// field names to text values, enum tags, or nested models. Models are created
// from kind defaults and updated through Merge, which always backfills absent
// fields from the defaults so a merged model is never partially populated.
package content
