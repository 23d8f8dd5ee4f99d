package graph

// This file will be automatically regenerated based on the schema, any resolver implementations
// will be copied through when generating and any unknown code will be moved to the end.

import (
	"context"

	"github.com/faizp/tweets/backend/go-graphql/graph/model"
	"github.com/faizp/tweets/backend/go-graphql/internal/service"
)

func (r *mutationResolver) PostTweet(ctx context.Context, text string, userID string) (*model.Tweet, error) {
	tweet, err := r.Service.PostTweet(ctx, service.PostTweetInput{Text: text, UserID: userID})
	if err != nil {
		return nil, asGraphQLError(err)
	}
	return toModelTweet(tweet), nil
}

func (r *mutationResolver) DeleteTweet(ctx context.Context, id string) (bool, error) {
	deleted, err := r.Service.DeleteTweet(ctx, id)
	if err != nil {
		return false, asGraphQLError(err)
	}
	return deleted, nil
}

func (r *queryResolver) AllUsers(ctx context.Context) ([]*model.User, error) {
	users, err := r.Service.ListUsers(ctx)
	if err != nil {
		return nil, asGraphQLError(err)
	}
	return toModelUsers(users), nil
}

func (r *queryResolver) AllTweets(ctx context.Context) ([]*model.Tweet, error) {
	tweets, err := r.Service.ListTweets(ctx)
	if err != nil {
		return nil, asGraphQLError(err)
	}
	return toModelTweets(tweets), nil
}

func (r *queryResolver) Tweet(ctx context.Context, id string) (*model.Tweet, error) {
	tweet, err := r.Service.Tweet(ctx, id)
	if err != nil {
		return nil, asGraphQLError(err)
	}
	if tweet == nil {
		return nil, nil
	}
	return toModelTweet(*tweet), nil
}

func (r *tweetResolver) Author(ctx context.Context, obj *model.Tweet) (*model.User, error) {
	author, err := r.Service.Author(ctx, fromModelTweet(obj))
	if err != nil {
		return nil, asGraphQLError(err)
	}
	if author == nil {
		return nil, nil
	}
	return toModelUser(*author), nil
}

func (r *userResolver) FullName(ctx context.Context, obj *model.User) (string, error) {
	return service.FullName(fromModelUser(obj)), nil
}

// Mutation returns MutationResolver implementation.
func (r *Resolver) Mutation() MutationResolver { return &mutationResolver{r} }

// Query returns QueryResolver implementation.
func (r *Resolver) Query() QueryResolver { return &queryResolver{r} }

// Tweet returns TweetResolver implementation.
func (r *Resolver) Tweet() TweetResolver { return &tweetResolver{r} }

// User returns UserResolver implementation.
func (r *Resolver) User() UserResolver { return &userResolver{r} }

type mutationResolver struct{ *Resolver }
type queryResolver struct{ *Resolver }
type tweetResolver struct{ *Resolver }
type userResolver struct{ *Resolver }
