// Package catalog owns the juice product catalog: the embedded seed document,
// product validation, and filtered listing over a product store.
package catalog
