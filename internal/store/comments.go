package store

import (
	"time"

	"github.com/techikansh/blogging-platform/internal/types"
)

// Comments are a local-only simulation: no comment endpoint exists yet,
// so threads live in memory and ids are a client-side sequence that is
// not reconciled with any server scheme.

// Comments returns the local thread for a post.
func (s *PostStore) Comments(postID int) []types.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.Comment(nil), s.comments[postID]...)
}

// AddComment appends a comment with id max(existing)+1 (1 for an empty
// thread) and bumps the parent's comment counter through the index.
func (s *PostStore) AddComment(postID int, author, content string) types.Comment {
	s.mu.Lock()

	next := 1
	for _, c := range s.comments[postID] {
		if c.ID >= next {
			next = c.ID + 1
		}
	}

	comment := types.Comment{
		ID:      next,
		PostID:  postID,
		Author:  author,
		Content: content,
		Date:    time.Now().Format("January 2, 2006"),
		Likes:   0,
	}
	s.comments[postID] = append(s.comments[postID], comment)
	s.apply(postID, func(p *types.Post) { p.Comments++ })
	s.mu.Unlock()

	s.notify(types.NotifySuccess, "Comment added successfully!")
	return comment
}

// LikeComment bumps a single comment's like counter. Reports whether the
// comment exists.
func (s *PostStore) LikeComment(postID, commentID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	thread := s.comments[postID]
	for i := range thread {
		if thread[i].ID == commentID {
			thread[i].Likes++
			return true
		}
	}
	return false
}
