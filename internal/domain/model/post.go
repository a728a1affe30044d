package model

import "encoding/json"

// Post is a blog entry. Title holds whatever JSON value the client sent; it is
// omitted from JSON when absent.
type Post struct {
	ID    int             `json:"id"`
	Title json.RawMessage `json:"title,omitempty"`
}

// RecordID returns the post id.
func (p Post) RecordID() int { return p.ID }

// SeedPosts returns the posts present at startup.
func SeedPosts() []Post {
	return []Post{
		{ID: 1, Title: TextTitle("Primo post")},
		{ID: 2, Title: TextTitle("Secondo post")},
	}
}

// TextTitle encodes s as a JSON string title.
func TextTitle(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}
