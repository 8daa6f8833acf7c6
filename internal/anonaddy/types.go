package anonaddy

// Alias is the addy.io alias record as returned by /api/v1/aliases.
// The scan engine reads id, email, active and description; the rest is
// provider metadata kept for debugging.
type Alias struct {
	AliasID         string   `json:"id"`
	UserID          string   `json:"user_id"`
	AliasableID     string   `json:"aliasable_id"`
	AliasableType   string   `json:"aliasable_type"`
	LocalPart       string   `json:"local_part"`
	Extension       string   `json:"extension"`
	Domain          string   `json:"domain"`
	Address         string   `json:"email"`
	Active          bool     `json:"active"`
	Note            string   `json:"description"`
	EmailsForwarded int      `json:"emails_forwarded"`
	EmailsBlocked   int      `json:"emails_blocked"`
	EmailsReplied   int      `json:"emails_replied"`
	EmailsSent      int      `json:"emails_sent"`
	Recipients      []string `json:"recipients"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

func (a *Alias) ID() string {
	return a.AliasID
}

func (a *Alias) Email() string {
	return a.Address
}

func (a *Alias) Description() string {
	return a.Note
}

func (a *Alias) IsActive() bool {
	return a.Active
}

// listResponse is the data envelope addy.io wraps listings in.
type listResponse struct {
	Data []*Alias `json:"data"`
}
