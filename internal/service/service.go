package service

import (
	"context"

	"github.com/faizp/tweets/backend/go-graphql/internal/platform/logger"
	"github.com/faizp/tweets/backend/go-graphql/internal/store"
)

type Service struct {
	store *store.Store
	log   *logger.Logger
}

func New(st *store.Store, log *logger.Logger) *Service {
	return &Service{store: st, log: log}
}

func (s *Service) ListUsers(ctx context.Context) ([]store.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrapContextError(err)
	}
	users := s.store.Users()
	s.log.Debug("all_users_listed", "count", len(users))
	return users, nil
}

func (s *Service) ListTweets(ctx context.Context) ([]store.Tweet, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrapContextError(err)
	}
	return s.store.Tweets(), nil
}

// Tweet returns nil without an error when no tweet has the id.
func (s *Service) Tweet(ctx context.Context, id string) (*store.Tweet, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrapContextError(err)
	}
	t, ok := s.store.TweetByID(id)
	if !ok {
		return nil, nil
	}
	return &t, nil
}

// PostTweet stores the tweet as given. The author is not required to exist.
func (s *Service) PostTweet(ctx context.Context, in PostTweetInput) (store.Tweet, error) {
	if err := ctx.Err(); err != nil {
		return store.Tweet{}, wrapContextError(err)
	}
	t := s.store.InsertTweet(in.Text, in.UserID)
	s.log.Info("tweet_posted", "tweet_id", t.ID, "user_id", t.UserID)
	return t, nil
}

// DeleteTweet reports false when no tweet has the id.
func (s *Service) DeleteTweet(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, wrapContextError(err)
	}
	deleted := s.store.DeleteTweet(id)
	if deleted {
		s.log.Info("tweet_deleted", "tweet_id", id)
	}
	return deleted, nil
}

// Author returns the first user whose id matches the tweet's user id, or nil.
func (s *Service) Author(ctx context.Context, t store.Tweet) (*store.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrapContextError(err)
	}
	s.log.Debug("tweet_author_resolved", "user_id", t.UserID)
	u, ok := s.store.UserByID(t.UserID)
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func FullName(u store.User) string {
	return u.FirstName + " " + u.LastName
}
