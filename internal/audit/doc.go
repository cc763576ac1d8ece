// Package audit appends operation records to a JSONL log next to the store
// file, so a team can see who touched which secret names and when. Secret
// values never appear in the log.
package audit
