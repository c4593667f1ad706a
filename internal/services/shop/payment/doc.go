// Package payment simulates card checkout. MockProcessor validates card
// details, waits a configurable processing delay, and issues a signed token
// describing the charge. No payment gateway is contacted.
package payment
