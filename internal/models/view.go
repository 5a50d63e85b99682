package models

import "strings"

// SplitTags turns the stored delimited tag string into a clean slice.
func SplitTags(tags string) []string {
	parts := strings.FieldsFunc(tags, func(r rune) bool {
		return r == ',' || r == ' '
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// View assembles the client-facing shape of a post, applying the author
// name and avatar fallbacks.
func (p *Post) View() PostView {
	return PostView{
		ID:         p.ID,
		AuthorID:   p.AuthorID,
		AuthorName: p.Author.Name(),
		AvatarURL:  p.Author.Avatar(),
		Title:      p.Title,
		Body:       p.Body,
		Tags:       SplitTags(p.Tags),
		FileURL:    p.FileURL,
		MediaType:  p.MediaType,
		Likes:      p.Likes,
		CreatedAt:  p.CreatedAt,
	}
}

// View assembles the client-facing shape of a comment.
func (c *Comment) View() CommentView {
	return CommentView{
		ID:         c.ID,
		PostID:     c.PostID,
		AuthorID:   c.AuthorID,
		AuthorName: c.Author.Name(),
		AvatarURL:  c.Author.Avatar(),
		Text:       c.Text,
		CreatedAt:  c.CreatedAt,
	}
}
