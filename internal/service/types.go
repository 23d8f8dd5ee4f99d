package service

type PostTweetInput struct {
	Text   string
	UserID string
}
