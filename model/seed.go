package model

import "time"

// DefaultAuthor is the local user identity used for composed posts.
var DefaultAuthor = Author{
	Name:   "あなたの名前",
	Handle: "@yours",
	Avatar: "https://i.pravatar.cc/40?img=3",
}

var devAuthor = Author{
	Name:   "開発者",
	Handle: "@dev",
	Avatar: "https://i.pravatar.cc/40?img=5",
}

const (
	SeedWelcome = "はじめまして。これがサンプル投稿だよ。いいねやリツイートを試してみて！"
	SeedAbout   = "X風のタイムラインを静的サイトで再現してみた。ローカルに保存されます。"
)

// SeedPosts builds the two sample posts used to initialize an empty store.
func SeedPosts(now time.Time, local Author) []Post {
	ms := now.UnixMilli()
	return []Post{
		{
			ID:       ms - 200000,
			Author:   local,
			Content:  SeedWelcome,
			Time:     ms - 200000,
			Likes:    2,
			Retweets: 1,
		},
		{
			ID:       ms - 500000,
			Author:   devAuthor,
			Content:  SeedAbout,
			Time:     ms - 500000,
			Likes:    5,
			Retweets: 0,
		},
	}
}
