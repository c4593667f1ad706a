// Package account manages customer identities: email/password sign-up and
// sign-in with bcrypt hashes, and the delivery profile attached to each user.
package account
