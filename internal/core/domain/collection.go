package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// Collection is a curated list of products owned by a creator.
// The backend has served the identifier as either "_id" or "id".
type Collection struct {
	ID          string          `json:"_id,omitempty"`
	AltID       string          `json:"id,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image,omitempty"`
	CreatedAt   Timestamp       `json:"createdAt"`
	Likes       int             `json:"likes"`
	Creator     *CreatorSummary `json:"creator,omitempty"`
}

// Key returns the record identifier, preferring "_id".
func (c Collection) Key() string {
	if c.ID != "" {
		return c.ID
	}
	return c.AltID
}

// Matches reports whether id names this record under either identifier field.
func (c Collection) Matches(id string) bool {
	return id != "" && (c.ID == id || c.AltID == id)
}

// CollectionPatch is a partial update. Nil fields are left untouched.
type CollectionPatch struct {
	Title       *string         `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	Image       *string         `json:"image,omitempty"`
	Likes       *int            `json:"likes,omitempty"`
	Creator     *CreatorSummary `json:"creator,omitempty"`
}

// IsEmpty reports whether the patch sets no field.
func (p CollectionPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Image == nil && p.Likes == nil && p.Creator == nil
}

// Apply returns c with every set field of p overwritten.
func (p CollectionPatch) Apply(c Collection) Collection {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Image != nil {
		c.Image = *p.Image
	}
	if p.Likes != nil {
		c.Likes = *p.Likes
	}
	if p.Creator != nil {
		creator := *p.Creator
		c.Creator = &creator
	}
	return c
}

// CollectionInput carries the fields needed to create a collection.
type CollectionInput struct {
	Title       string `json:"title"                 validate:"notblank" label:"Title"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

// Timestamp accepts RFC 3339 and date-only creation times.
// An empty or unparseable value decodes to the zero time.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateTime,
	time.DateOnly,
}

// ParseTimestamp parses s using the accepted layouts.
func ParseTimestamp(s string) (Timestamp, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, true
		}
	}
	return Timestamp{}, false
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Epoch milliseconds; any other shape reads as the zero time.
		var ms int64
		if numErr := json.Unmarshal(data, &ms); numErr != nil {
			*t = Timestamp{}
			return nil
		}
		*t = Timestamp{Time: time.UnixMilli(ms).UTC()}
		return nil
	}
	parsed, _ := ParseTimestamp(s)
	*t = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}
