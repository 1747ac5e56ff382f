package entity

import "time"

// Post is a published story. It is reachable by two independent unique keys:
// Slug is the public identifier, Code is the private edit credential. Code and
// OwnerIdentity are never exposed in read-only views.
type Post struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Story         string    `json:"story"`
	Delta         string    `json:"delta"`
	StoryAmp      string    `json:"story_amp"`
	OwnerIdentity string    `json:"owner_identity"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (p *Post) URL() string {
	return "/" + p.Slug
}

func (p *Post) AmpURL() string {
	return "/" + p.Slug + "/amp"
}

// Editable reports whether the given identity may modify the post. An empty
// identity never matches, even against a post created without one.
func (p *Post) Editable(ownerIdentity string) bool {
	return ownerIdentity != "" && p.OwnerIdentity == ownerIdentity
}
