// Package sqlite implements the shop storage contract on a single SQLite file.
//
// Timestamps are stored as UTC milliseconds; order lines and product
// ingredients are stored as JSON text.
package sqlite
