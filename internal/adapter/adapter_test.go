package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/techikansh/blogging-platform/internal/types"
)

func TestAdapt_DefaultsForMissingOptionalFields(t *testing.T) {
	post := Adapt(types.RawPost{ID: 1, Title: "t", Content: "c"})

	assert.Equal(t, 1, post.ID)
	assert.Equal(t, "t", post.Title)
	assert.Equal(t, "c", post.Content)
	assert.Equal(t, "", post.Subtitle)
	assert.Equal(t, "Unknown", post.Author.FirstName)
	assert.Equal(t, "Author", post.Author.LastName)
	assert.Equal(t, "5 min read", post.ReadTime)
	assert.Equal(t, DefaultImageURL, post.ImageURL)
	assert.Zero(t, post.Likes)
	assert.Zero(t, post.Bookmarks)
	assert.Zero(t, post.Shares)
	assert.Zero(t, post.Comments)
	assert.False(t, post.Featured)
	assert.Empty(t, post.Tags)
	assert.NotNil(t, post.Tags)
}

func TestAdapt_KeepsSuppliedFields(t *testing.T) {
	raw := types.RawPost{
		ID:       2,
		Title:    "Go generics",
		Subtitle: "a tour",
		Content:  "body",
		Author: &types.Author{
			ID:        7,
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
		},
		ReadTime:  "8 min read",
		Likes:     4,
		Bookmarks: 2,
		Shares:    1,
		ImageURL:  "https://example.com/cover.png",
		Featured:  true,
		Category:  "Programming",
	}

	post := Adapt(raw)
	assert.Equal(t, "a tour", post.Subtitle)
	assert.Equal(t, "Ada", post.Author.FirstName)
	assert.Equal(t, "8 min read", post.ReadTime)
	assert.Equal(t, 4, post.Likes)
	assert.Equal(t, 2, post.Bookmarks)
	assert.Equal(t, 1, post.Shares)
	assert.Equal(t, "https://example.com/cover.png", post.ImageURL)
	assert.True(t, post.Featured)
	assert.Equal(t, "Programming", post.Category)
}

func TestAdapt_ForcesCommentsToZero(t *testing.T) {
	post := Adapt(types.RawPost{ID: 1, Title: "t", Content: "c", Comments: 42})
	assert.Zero(t, post.Comments)
}

func TestAdapt_ProjectsTagNames(t *testing.T) {
	raw := types.RawPost{
		ID: 1, Title: "t", Content: "c",
		Tags: []types.RawTag{{ID: 10, Name: "go"}, {ID: 11, Name: "testing"}},
	}
	assert.Equal(t, []string{"go", "testing"}, Adapt(raw).Tags)
}

func TestAdapt_DateFormats(t *testing.T) {
	cases := map[string]string{
		"2024-07-04T10:30:00Z":  "July 4, 2024",
		"2024-07-04T10:30:00":   "July 4, 2024",
		"2024-07-04":            "July 4, 2024",
		"July 4, 2024":          "July 4, 2024",
		"not a date":            "not a date",
		"":                      "",
	}
	for raw, want := range cases {
		post := Adapt(types.RawPost{ID: 1, Title: "t", Content: "c", CreatedDate: raw})
		assert.Equal(t, want, post.CreatedDate, "raw date %q", raw)
	}
}

// Re-adapting an already-canonical record changes nothing: defaults are
// stable and the date format parses back to itself.
func TestAdapt_Idempotent(t *testing.T) {
	first := Adapt(types.RawPost{ID: 1, Title: "t", Content: "c", CreatedDate: "2024-07-04"})

	again := Adapt(types.RawPost{
		ID:          first.ID,
		Title:       first.Title,
		Subtitle:    first.Subtitle,
		Content:     first.Content,
		Author:      &first.Author,
		ReadTime:    first.ReadTime,
		CreatedDate: first.CreatedDate,
		Likes:       first.Likes,
		Bookmarks:   first.Bookmarks,
		Shares:      first.Shares,
		ImageURL:    first.ImageURL,
		Featured:    first.Featured,
		Tags:        []types.RawTag{},
		Category:    first.Category,
	})

	assert.Equal(t, first, again)
}

func TestAdaptAll_FailureAndNullContent(t *testing.T) {
	got := AdaptAll(types.PostEnvelope{Success: false, Content: nil})
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got = AdaptAll(types.PostEnvelope{Success: true, Content: nil})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAdaptAll_MapsEveryRecord(t *testing.T) {
	env := types.PostEnvelope{
		Success: true,
		Content: []types.RawPost{
			{ID: 1, Title: "A", Content: "a", Likes: 2},
			{ID: 2, Title: "B", Content: "b"},
		},
	}
	posts := AdaptAll(env)
	assert.Len(t, posts, 2)
	assert.Equal(t, 2, posts[0].Likes)
	assert.Equal(t, "5 min read", posts[1].ReadTime)
}
