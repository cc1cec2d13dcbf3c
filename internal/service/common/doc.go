// Package common holds helpers shared by several services.
//
// It detects the current system actor (hostname/username) recorded with
// every mode change.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
