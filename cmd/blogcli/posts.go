package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/techikansh/blogging-platform/internal/types"
	"github.com/techikansh/blogging-platform/internal/utils"
)

var (
	heading = color.New(color.Bold)
	faint   = color.New(color.Faint)
)

func printNotification(n types.Notification) {
	if n.Type == types.NotifyError {
		color.Red("✗ %s", n.Message)
		return
	}
	color.Green("✓ %s", n.Message)
}

func newPostsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Browse, search and publish posts",
	}
	cmd.AddCommand(newPostsListCmd(a), newPostsShowCmd(a), newPostsCreateCmd(a))
	return cmd
}

func newPostsListCmd(a *app) *cobra.Command {
	var category, tag, search string
	var featuredOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.store.LoadPosts(ctx); err != nil {
				return err
			}
			switch {
			case category != "":
				if err := a.store.FilterByCategory(ctx, category); err != nil {
					return err
				}
			case tag != "":
				if err := a.store.FilterByTag(ctx, tag); err != nil {
					return err
				}
			}
			if search != "" {
				a.store.Search(search)
			}

			if featuredOnly {
				featured := a.store.Featured()
				if len(featured) > a.cfg.FeaturedMax {
					featured = featured[:a.cfg.FeaturedMax]
				}
				heading.Println("Featured Stories")
				printPostLines(featured)
				return nil
			}

			posts := a.store.Posts()
			if a.store.ActiveFilter() == "all" && search == "" {
				heading.Printf("Latest Articles (%d posts)\n", len(posts))
			} else {
				heading.Printf("Articles: %s (%d posts)\n", a.store.ActiveFilter(), len(posts))
			}
			if len(posts) == 0 {
				fmt.Println("No posts found matching your criteria.")
				return nil
			}
			printPostLines(posts)

			if categories := a.store.Categories(); len(categories) > 0 {
				faint.Printf("categories: %s\n", strings.Join(categories, ", "))
			}
			if tags := a.store.Tags(); len(tags) > 0 {
				faint.Printf("tags: %s\n", strings.Join(tags, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().StringVar(&tag, "tag", "", "filter by tag")
	cmd.Flags().StringVar(&search, "search", "", "search title, content and tags")
	cmd.Flags().BoolVar(&featuredOnly, "featured", false, "show only featured stories")
	return cmd
}

func newPostsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Read a single post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid post id %q", args[0])
			}

			post, err := a.store.OpenPost(cmd.Context(), id)
			if err != nil {
				return err
			}

			heading.Println(post.Title)
			if post.Subtitle != "" {
				fmt.Println(post.Subtitle)
			}
			faint.Printf("%s · %s · %s\n",
				strings.TrimSpace(post.Author.FirstName+" "+post.Author.LastName),
				post.CreatedDate, post.ReadTime)
			fmt.Println()
			for _, paragraph := range utils.SplitParagraphs(post.Content) {
				fmt.Println(paragraph)
				fmt.Println()
			}
			faint.Printf("♥ %d  🔖 %d  ↗ %d\n", post.Likes, post.Bookmarks, post.Shares)
			if len(post.Tags) > 0 {
				faint.Printf("tags: %s\n", strings.Join(post.Tags, ", "))
			}

			if related := a.store.RelatedPosts(id, a.cfg.RelatedMax); len(related) > 0 {
				fmt.Println()
				heading.Println("Related posts")
				printPostLines(related)
			}
			return nil
		},
	}
}

func newPostsCreateCmd(a *app) *cobra.Command {
	var draft types.CreatePostRequest
	var contentFile string
	var tags []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a new post",
		RunE: func(cmd *cobra.Command, args []string) error {
			if contentFile != "" {
				data, err := os.ReadFile(contentFile)
				if err != nil {
					return fmt.Errorf("failed to read content file: %w", err)
				}
				draft.Content = string(data)
			}
			draft.Tags = tags
			return a.store.Publish(cmd.Context(), draft)
		},
	}

	cmd.Flags().StringVar(&draft.Title, "title", "", "post title")
	cmd.Flags().StringVar(&draft.Subtitle, "subtitle", "", "post subtitle")
	cmd.Flags().StringVar(&draft.Content, "content", "", "post content")
	cmd.Flags().StringVar(&contentFile, "content-file", "", "read content from a file")
	cmd.Flags().StringVar(&draft.Category, "category", "", "post category")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "comma-separated tags")
	cmd.Flags().StringVar(&draft.ImageURL, "image", "", "cover image URL")
	cmd.Flags().BoolVar(&draft.Featured, "featured", false, "mark as featured")
	cmd.MarkFlagRequired("title")
	return cmd
}

func newBookmarksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bookmarks",
		Short: "List your bookmarked posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.LoadBookmarks(cmd.Context()); err != nil {
				return err
			}
			bookmarked := a.store.Bookmarked()
			heading.Printf("Bookmarks (%d)\n", len(bookmarked))
			printPostLines(bookmarked)
			return nil
		},
	}
}

func newLikeCmd(a *app) *cobra.Command {
	return postActionCmd("like <id>", "Like a post", func(cmd *cobra.Command, id int) error {
		return a.store.Like(cmd.Context(), id)
	})
}

func newBookmarkCmd(a *app) *cobra.Command {
	return postActionCmd("bookmark <id>", "Bookmark a post", func(cmd *cobra.Command, id int) error {
		return a.store.Bookmark(cmd.Context(), id)
	})
}

func newUnbookmarkCmd(a *app) *cobra.Command {
	return postActionCmd("unbookmark <id>", "Remove a post from your bookmarks", func(cmd *cobra.Command, id int) error {
		return a.store.Unbookmark(cmd.Context(), id)
	})
}

func newShareCmd(a *app) *cobra.Command {
	return postActionCmd("share <id>", "Share a post", func(cmd *cobra.Command, id int) error {
		return a.store.Share(cmd.Context(), id)
	})
}

func postActionCmd(use, short string, action func(cmd *cobra.Command, id int) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid post id %q", args[0])
			}
			return action(cmd, id)
		},
	}
}

func newCommentCmd(a *app) *cobra.Command {
	var author string

	cmd := &cobra.Command{
		Use:   "comment <post-id> <text>",
		Short: "Comment on a post (local-only until the endpoint exists)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid post id %q", args[0])
			}
			comment := a.store.AddComment(id, author, args[1])
			faint.Printf("comment #%d on post %d\n", comment.ID, id)
			return nil
		},
	}
	cmd.Flags().StringVar(&author, "author", "You", "display name for the comment")
	return cmd
}

func printPostLines(posts []types.Post) {
	for _, p := range posts {
		marker := " "
		if p.Featured {
			marker = "*"
		}
		fmt.Printf("%s [%d] %s", marker, p.ID, p.Title)
		if p.Category != "" {
			faint.Printf("  (%s)", p.Category)
		}
		faint.Printf("  ♥ %d 🔖 %d ↗ %d", p.Likes, p.Bookmarks, p.Shares)
		fmt.Println()
	}
}
