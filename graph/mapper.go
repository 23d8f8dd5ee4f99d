package graph

import (
	"github.com/faizp/tweets/backend/go-graphql/graph/model"
	"github.com/faizp/tweets/backend/go-graphql/internal/store"
)

func toModelUser(u store.User) *model.User {
	return &model.User{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func toModelUsers(users []store.User) []*model.User {
	out := make([]*model.User, 0, len(users))
	for _, u := range users {
		out = append(out, toModelUser(u))
	}
	return out
}

func toModelTweet(t store.Tweet) *model.Tweet {
	return &model.Tweet{
		ID:     t.ID,
		Text:   t.Text,
		UserID: t.UserID,
	}
}

func toModelTweets(tweets []store.Tweet) []*model.Tweet {
	out := make([]*model.Tweet, 0, len(tweets))
	for _, t := range tweets {
		out = append(out, toModelTweet(t))
	}
	return out
}

func fromModelUser(u *model.User) store.User {
	return store.User{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName}
}

func fromModelTweet(t *model.Tweet) store.Tweet {
	return store.Tweet{ID: t.ID, Text: t.Text, UserID: t.UserID}
}
