// Package quiz implements the three-step program finder: a fixed question
// sequence whose answers form a lookup key into a table of canned programs.
package quiz
