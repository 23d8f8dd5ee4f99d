package model

type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Tweet keeps the author reference unexposed; Tweet.author resolves it.
type Tweet struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	UserID string `json:"-"`
}
