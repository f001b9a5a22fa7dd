package model

import "sort"

// Author is embedded by value into every post.
type Author struct {
	Name   string `json:"name"`
	Handle string `json:"handle"`
	Avatar string `json:"avatar"`
}

// Post is a single timeline entry. Only the engagement fields change after
// creation.
type Post struct {
	ID        int64  `json:"id"`
	Author    Author `json:"author"`
	Content   string `json:"content"`
	Time      int64  `json:"time"`
	Likes     int    `json:"likes"`
	Retweets  int    `json:"retweets"`
	Liked     bool   `json:"liked"`
	Retweeted bool   `json:"retweeted"`
	Replies   int    `json:"replies,omitempty"`
}

func (p *Post) toggleLike() {
	p.Liked = !p.Liked
	p.Likes = step(p.Likes, p.Liked)
}

func (p *Post) toggleRetweet() {
	p.Retweeted = !p.Retweeted
	p.Retweets = step(p.Retweets, p.Retweeted)
}

func step(n int, on bool) int {
	if on {
		return n + 1
	}
	if n <= 1 {
		return 0
	}
	return n - 1
}

// ByTimeDESC represents a sort interface for sorting Posts descending by Time
type ByTimeDESC []Post

func (o ByTimeDESC) Len() int           { return len(o) }
func (o ByTimeDESC) Swap(i, j int)      { o[i], o[j] = o[j], o[i] }
func (o ByTimeDESC) Less(i, j int) bool { return o[i].Time > o[j].Time }

// DisplayOrder returns a copy of posts sorted newest first. Posts with equal
// times keep their relative order.
func DisplayOrder(posts []Post) []Post {
	out := make([]Post, len(posts))
	copy(out, posts)
	sort.Stable(ByTimeDESC(out))
	return out
}
