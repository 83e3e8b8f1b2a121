package model

import "time"

// Link describes one expiring link record.
//
// The identifier is a server-generated UUID and doubles as the lookup
// capability: whoever holds it can resolve the link, nobody can guess it.
type Link struct {
	Identifier         string    `json:"identifier" gorm:"primaryKey;size:36"`
	TargetURL          string    `json:"target_url" gorm:"type:text;not null"`
	ExpiresAt          time.Time `json:"expires_at" gorm:"not null"`
	ExpiresOnAccess    bool      `json:"expires_on_access" gorm:"not null;default:false"`
	ExpiredRedirectURL string    `json:"expired_redirect_url,omitempty" gorm:"type:text"`
	CreatedAt          time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName keeps the Postgres table name stable across gorm versions.
func (Link) TableName() string { return "expiring_links" }

// ExpiredAt reports whether the link has expired as of the given instant.
// Expiry is strict: a link resolved exactly at ExpiresAt is still live.
func (l *Link) ExpiredAt(now time.Time) bool {
	return now.After(l.ExpiresAt)
}
