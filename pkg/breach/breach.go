// Package breach holds the breach record model and the lookup port
// the scan engine checks alias addresses against.
package breach

import "context"

// Breach is one recorded data breach returned by the lookup provider.
// Records are ephemeral facts: fetched per lookup, never cached. The
// engine treats a non-empty breach list as "compromised" regardless of
// the risk flags.
type Breach struct {
	Name         string   `json:"Name" yaml:"name"`
	Title        string   `json:"Title" yaml:"title"`
	Domain       string   `json:"Domain" yaml:"domain"`
	BreachDate   string   `json:"BreachDate" yaml:"breach_date"`
	AddedDate    string   `json:"AddedDate" yaml:"added_date"`
	ModifiedDate string   `json:"ModifiedDate" yaml:"modified_date"`
	PwnCount     int64    `json:"PwnCount" yaml:"pwn_count"`
	Description  string   `json:"Description" yaml:"description,omitempty"`
	DataClasses  []string `json:"DataClasses" yaml:"data_classes,omitempty"`
	IsVerified   bool     `json:"IsVerified" yaml:"verified"`
	IsFabricated bool     `json:"IsFabricated" yaml:"fabricated"`
	IsSensitive  bool     `json:"IsSensitive" yaml:"sensitive"`
	IsRetired    bool     `json:"IsRetired" yaml:"retired"`
	IsSpamList   bool     `json:"IsSpamList" yaml:"spam_list"`
	LogoPath     string   `json:"LogoPath" yaml:"-"`
}

// Lookup checks one address against a breach database. An empty slice
// with a nil error means the address appears in no known breach.
// Implementations handle provider rate limiting internally; a returned
// error is terminal for this call.
type Lookup interface {
	Check(ctx context.Context, email string) ([]Breach, error)
}
