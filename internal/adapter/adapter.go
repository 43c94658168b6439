// Package adapter normalizes raw backend post records into the canonical
// client Post shape, filling defaults for optional fields the backend
// may omit.
package adapter

import (
	"time"

	"github.com/techikansh/blogging-platform/internal/types"
)

const (
	// DefaultReadTime is used when the backend omits a read time.
	DefaultReadTime = "5 min read"
	// DefaultImageURL is the placeholder cover image.
	DefaultImageURL = "https://images.unsplash.com/photo-1633356122544-f134324a6cee"

	displayDateLayout = "January 2, 2006"
)

// unknownAuthor stands in when a record carries no author, so rendering
// never has to branch on a missing one.
var unknownAuthor = types.Author{
	ID:           0,
	FirstName:    "Unknown",
	LastName:     "Author",
	Email:        "",
	ProfileImage: "https://randomuser.me/api/portraits/men/32.jpg",
}

// Layouts the backend has been observed to ship dates in.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	displayDateLayout,
}

// Adapt normalizes one raw record. It is total over missing optional
// fields; id, title and content are taken as-is since their absence is a
// caller error. Each rule is independent of the others.
func Adapt(raw types.RawPost) types.Post {
	author := unknownAuthor
	if raw.Author != nil {
		author = *raw.Author
	}

	readTime := raw.ReadTime
	if readTime == "" {
		readTime = DefaultReadTime
	}

	imageURL := raw.ImageURL
	if imageURL == "" {
		imageURL = DefaultImageURL
	}

	tags := make([]string, 0, len(raw.Tags))
	for _, tag := range raw.Tags {
		tags = append(tags, tag.Name)
	}

	return types.Post{
		ID:          raw.ID,
		Title:       raw.Title,
		Subtitle:    raw.Subtitle,
		Content:     raw.Content,
		Author:      author,
		ReadTime:    readTime,
		CreatedDate: formatDisplayDate(raw.CreatedDate),
		Likes:       raw.Likes,
		// Comment totals are not trusted from list/get payloads; the
		// dedicated count endpoint does not exist yet, so this always
		// starts at 0.
		Comments:  0,
		Bookmarks: raw.Bookmarks,
		Shares:    raw.Shares,
		ImageURL:  imageURL,
		Featured:  raw.Featured,
		Tags:      tags,
		Category:  raw.Category,
	}
}

// AdaptAll normalizes a whole envelope. A failed or content-less
// response yields an empty slice, not an error; the caller distinguishes
// "nothing found" from "fetch failed" via the envelope's success flag.
func AdaptAll(env types.PostEnvelope) []types.Post {
	if !env.Success || env.Content == nil {
		return []types.Post{}
	}

	posts := make([]types.Post, 0, len(env.Content))
	for _, raw := range env.Content {
		posts = append(posts, Adapt(raw))
	}
	return posts
}

// formatDisplayDate reformats whatever date representation the backend
// supplied into the long month/day/year form. Unparseable input passes
// through unchanged.
func formatDisplayDate(raw string) string {
	if raw == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.Format(displayDateLayout)
		}
	}
	return raw
}
