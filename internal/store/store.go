package store

import (
	"context"
	"strconv"
	"sync"
)

type User struct {
	ID        string
	FirstName string
	LastName  string
}

type Tweet struct {
	ID     string
	Text   string
	UserID string
}

// Store owns the user and tweet collections for the lifetime of the process.
// Both collections keep insertion order.
type Store struct {
	mu          sync.RWMutex
	users       []User
	tweets      []Tweet
	nextTweetID uint64
}

func New(users []User, tweets []Tweet) *Store {
	s := &Store{
		users:  append([]User(nil), users...),
		tweets: append([]Tweet(nil), tweets...),
	}
	s.nextTweetID = nextID(s.tweets)
	return s
}

// NewSeeded returns a Store holding the fixed startup records.
func NewSeeded() *Store {
	return New(SeedUsers(), SeedTweets())
}

func SeedUsers() []User {
	return []User{
		{ID: "1", FirstName: "nico", LastName: "las"},
		{ID: "2", FirstName: "Elon", LastName: "Mask"},
	}
}

func SeedTweets() []Tweet {
	return []Tweet{
		{ID: "1", Text: "first one!", UserID: "2"},
		{ID: "2", Text: "second one", UserID: "1"},
	}
}

func (s *Store) Users() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]User{}, s.users...)
}

func (s *Store) Tweets() []Tweet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Tweet{}, s.tweets...)
}

func (s *Store) UserByID(id string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

func (s *Store) TweetByID(id string) (Tweet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tweets {
		if t.ID == id {
			return t, true
		}
	}
	return Tweet{}, false
}

// InsertTweet appends a tweet with the next id from the store's counter.
// Ids are never handed out twice, deleted ones included.
func (s *Store) InsertTweet(text, userID string) Tweet {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := Tweet{
		ID:     strconv.FormatUint(s.nextTweetID, 10),
		Text:   text,
		UserID: userID,
	}
	s.nextTweetID++
	s.tweets = append(s.tweets, t)
	return t
}

// DeleteTweet removes the first tweet with the given id.
func (s *Store) DeleteTweet(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.tweets {
		if t.ID != id {
			continue
		}
		s.tweets = append(s.tweets[:i:i], s.tweets[i+1:]...)
		return true
	}
	return false
}

// Ping satisfies the health check; an in-memory store is up while the
// process is.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// nextID starts after the largest numeric id so seeded ids are not reissued.
func nextID(tweets []Tweet) uint64 {
	next := uint64(len(tweets)) + 1
	for _, t := range tweets {
		n, err := strconv.ParseUint(t.ID, 10, 64)
		if err != nil {
			continue
		}
		if n+1 > next {
			next = n + 1
		}
	}
	return next
}
