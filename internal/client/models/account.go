// Package models defines the records Tamamla persists: accounts and tasks.
package models

// Account is a local user. Username is the identity and is never renamed.
type Account struct {
	Username         string `json:"username"`
	CredentialDigest string `json:"credentialDigest"`
}
