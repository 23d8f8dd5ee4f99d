package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/faizp/tweets/backend/go-graphql/internal/platform/logger"
	"github.com/faizp/tweets/backend/go-graphql/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st := store.NewSeeded()
	return New(st, logger.NewTest(t)), st
}

func TestFullName(t *testing.T) {
	tests := []struct {
		in      store.User
		expects string
	}{
		{in: store.User{FirstName: "nico", LastName: "las"}, expects: "nico las"},
		{in: store.User{FirstName: "Elon", LastName: "Mask"}, expects: "Elon Mask"},
		{in: store.User{}, expects: " "},
	}

	for _, tc := range tests {
		if got := FullName(tc.in); got != tc.expects {
			t.Fatalf("FullName(%+v): got %q want %q", tc.in, got, tc.expects)
		}
	}
}

func TestTweet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, want := range store.SeedTweets() {
		got, err := svc.Tweet(ctx, want.ID)
		if err != nil {
			t.Fatalf("Tweet(%q): unexpected error: %v", want.ID, err)
		}
		if got == nil || *got != want {
			t.Fatalf("Tweet(%q): got %+v want %+v", want.ID, got, want)
		}
	}

	got, err := svc.Tweet(ctx, "nonexistent")
	if err != nil {
		t.Fatalf("Tweet(nonexistent): unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("Tweet(nonexistent): got %+v want nil", got)
	}
}

func TestPostThenDelete(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	posted, err := svc.PostTweet(ctx, PostTweetInput{Text: "gm", UserID: "2"})
	if err != nil {
		t.Fatalf("PostTweet returned error: %v", err)
	}
	if want := (store.Tweet{ID: "3", Text: "gm", UserID: "2"}); posted != want {
		t.Fatalf("PostTweet: got %+v want %+v", posted, want)
	}

	deleted, err := svc.DeleteTweet(ctx, "1")
	if err != nil {
		t.Fatalf("DeleteTweet returned error: %v", err)
	}
	if !deleted {
		t.Fatal(`DeleteTweet("1"): got false want true`)
	}
	for _, tw := range st.Tweets() {
		if tw.ID == "1" {
			t.Fatalf(`tweet "1" still listed: %+v`, st.Tweets())
		}
	}

	deleted, err = svc.DeleteTweet(ctx, "1")
	if err != nil {
		t.Fatalf("DeleteTweet returned error: %v", err)
	}
	if deleted {
		t.Fatal(`second DeleteTweet("1"): got true want false`)
	}
	if got := len(st.Tweets()); got != 2 {
		t.Fatalf("len(Tweets) = %d, expected 2", got)
	}
}

func TestAuthor(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	author, err := svc.Author(ctx, store.Tweet{ID: "1", UserID: "2"})
	if err != nil {
		t.Fatalf("Author returned error: %v", err)
	}
	if author == nil || author.ID != "2" {
		t.Fatalf("Author: got %+v want user 2", author)
	}

	author, err = svc.Author(ctx, store.Tweet{ID: "9", UserID: "404"})
	if err != nil {
		t.Fatalf("Author returned error: %v", err)
	}
	if author != nil {
		t.Fatalf("Author: got %+v want nil", author)
	}
}

func TestContextErrors(t *testing.T) {
	svc, st := newTestService(t)

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	expired, cancelExpired := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancelExpired()

	tests := []struct {
		name string
		ctx  context.Context
		code ErrorCode
	}{
		{name: "canceled", ctx: canceled, code: CodeCanceled},
		{name: "expired", ctx: expired, code: CodeTimeout},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.ListUsers(tc.ctx); !IsAppErrorCode(err, tc.code) {
				t.Fatalf("ListUsers: got %v want code %s", err, tc.code)
			}
			if _, err := svc.PostTweet(tc.ctx, PostTweetInput{Text: "x", UserID: "1"}); !IsAppErrorCode(err, tc.code) {
				t.Fatalf("PostTweet: got %v want code %s", err, tc.code)
			}
			if _, err := svc.DeleteTweet(tc.ctx, "1"); !IsAppErrorCode(err, tc.code) {
				t.Fatalf("DeleteTweet: got %v want code %s", err, tc.code)
			}
		})
	}

	if got := len(st.Tweets()); got != 2 {
		t.Fatalf("store modified by cancelled requests: %+v", st.Tweets())
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	err := wrapContextError(context.Canceled)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("errors.Is(%v, context.Canceled) = false", err)
	}
	if !IsAppErrorCode(NewInternal("boom", errors.New("disk")), CodeInternal) {
		t.Fatal("NewInternal: expected INTERNAL code")
	}
	if IsAppErrorCode(errors.New("plain"), CodeInternal) {
		t.Fatal("plain error reported an AppError code")
	}
}
