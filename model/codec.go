package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SchemaIssue describes a stored record that was repaired or dropped while
// decoding.
type SchemaIssue struct {
	Index   int
	Reason  string
	Dropped bool
}

func (i SchemaIssue) String() string {
	action := "repaired"
	if i.Dropped {
		action = "dropped"
	}
	return fmt.Sprintf("record %d %s: %s", i.Index, action, i.Reason)
}

type wireAuthor struct {
	Name   *string `json:"name"`
	Handle *string `json:"handle"`
	Avatar *string `json:"avatar"`
}

type wirePost struct {
	ID        *int64      `json:"id"`
	Author    *wireAuthor `json:"author"`
	Content   *string     `json:"content"`
	Time      *int64      `json:"time"`
	Likes     *int        `json:"likes"`
	Retweets  *int        `json:"retweets"`
	Liked     *bool       `json:"liked"`
	Retweeted *bool       `json:"retweeted"`
	Replies   *int        `json:"replies"`
}

// EncodePosts serializes the full list in the persisted layout.
func EncodePosts(posts []Post) ([]byte, error) {
	if posts == nil {
		posts = []Post{}
	}
	b, err := json.Marshal(posts)
	if err != nil {
		return nil, fmt.Errorf("encode posts: %w", err)
	}
	return b, nil
}

// DecodePosts parses a stored payload. A payload that is not a JSON array,
// or whose records all fail validation, yields ErrCorrupt. Individual bad
// records are repaired or dropped and reported as issues.
func DecodePosts(raw []byte) ([]Post, []SchemaIssue, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, nil, ErrCorrupt
	}
	var records []json.RawMessage
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var issues []SchemaIssue
	posts := make([]Post, 0, len(records))
	seen := make(map[int64]bool, len(records))
	for i, rec := range records {
		p, recIssues, ok := decodeRecord(i, rec)
		issues = append(issues, recIssues...)
		if !ok {
			continue
		}
		if seen[p.ID] {
			issues = append(issues, SchemaIssue{Index: i, Reason: fmt.Sprintf("duplicate id %d", p.ID), Dropped: true})
			continue
		}
		seen[p.ID] = true
		posts = append(posts, p)
	}
	if len(records) > 0 && len(posts) == 0 {
		return nil, issues, fmt.Errorf("%w: no valid records", ErrCorrupt)
	}
	return posts, issues, nil
}

func decodeRecord(i int, rec json.RawMessage) (Post, []SchemaIssue, bool) {
	drop := func(reason string) (Post, []SchemaIssue, bool) {
		return Post{}, []SchemaIssue{{Index: i, Reason: reason, Dropped: true}}, false
	}
	var w wirePost
	if err := json.Unmarshal(rec, &w); err != nil {
		return drop(err.Error())
	}
	switch {
	case w.ID == nil:
		return drop("missing id")
	case w.Time == nil:
		return drop("missing time")
	case w.Author == nil:
		return drop("missing author")
	case w.Content == nil:
		return drop("missing content")
	}

	var issues []SchemaIssue
	repair := func(reason string) {
		issues = append(issues, SchemaIssue{Index: i, Reason: reason})
	}
	p := Post{
		ID:      *w.ID,
		Time:    *w.Time,
		Content: *w.Content,
		Author: Author{
			Name:   deref(w.Author.Name),
			Handle: deref(w.Author.Handle),
			Avatar: deref(w.Author.Avatar),
		},
		Likes:     derefInt(w.Likes),
		Retweets:  derefInt(w.Retweets),
		Liked:     w.Liked != nil && *w.Liked,
		Retweeted: w.Retweeted != nil && *w.Retweeted,
		Replies:   derefInt(w.Replies),
	}
	if p.Likes < 0 {
		repair(fmt.Sprintf("negative likes %d", p.Likes))
		p.Likes = 0
	}
	if p.Retweets < 0 {
		repair(fmt.Sprintf("negative retweets %d", p.Retweets))
		p.Retweets = 0
	}
	if p.Replies < 0 {
		repair(fmt.Sprintf("negative replies %d", p.Replies))
		p.Replies = 0
	}
	return p, issues, true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
