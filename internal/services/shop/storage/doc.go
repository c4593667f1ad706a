// Package storage defines the persistence contract of the shop domain.
//
// Each domain package declares the narrow store it needs; Store collects them
// so one backend can serve the whole storefront.
package storage
