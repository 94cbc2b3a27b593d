// Package fingerprint derives deterministic cache keys from the
// identity-relevant content of a report or a single field value.
//
// Components are joined with a separator and hashed with SHA-256; the first
// 16 bytes render as a 32-character hex string. Section data is serialized
// with encoding/json, which sorts map keys, so two reports with equal
// content always produce the same fingerprint regardless of map iteration
// order.
package fingerprint
