package graph

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/99designs/gqlgen/client"
	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/extension"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/99designs/gqlgen/graphql/introspection"
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/faizp/tweets/backend/go-graphql/graph/model"
	"github.com/faizp/tweets/backend/go-graphql/internal/platform/logger"
	"github.com/faizp/tweets/backend/go-graphql/internal/service"
	"github.com/faizp/tweets/backend/go-graphql/internal/store"
)

type user struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FullName  string `json:"fullName"`
}

type tweet struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Author *user  `json:"author"`
}

func setupTestResolver(t *testing.T) (*Resolver, *store.Store) {
	t.Helper()
	st := store.NewSeeded()
	return &Resolver{Service: service.New(st, logger.NewTest(t))}, st
}

func newTestClient(t *testing.T, root ResolverRoot, withIntrospection bool) *client.Client {
	t.Helper()
	srv := handler.New(NewExecutableSchema(Config{Resolvers: root}))
	srv.AddTransport(transport.POST{})
	if withIntrospection {
		srv.Use(extension.Introspection{})
	}
	return client.New(srv)
}

func TestAllUsers(t *testing.T) {
	resolver, _ := setupTestResolver(t)
	c := newTestClient(t, resolver, false)

	var resp struct {
		AllUsers []user `json:"allUsers"`
	}
	c.MustPost(`{ allUsers { id firstName lastName fullName } }`, &resp)

	want := []user{
		{ID: "1", FirstName: "nico", LastName: "las", FullName: "nico las"},
		{ID: "2", FirstName: "Elon", LastName: "Mask", FullName: "Elon Mask"},
	}
	if len(resp.AllUsers) != len(want) {
		t.Fatalf("allUsers = %+v, want %+v", resp.AllUsers, want)
	}
	for i := range want {
		if resp.AllUsers[i] != want[i] {
			t.Errorf("allUsers[%d] = %+v, want %+v", i, resp.AllUsers[i], want[i])
		}
	}
}

func TestAllTweetsWithAuthor(t *testing.T) {
	resolver, _ := setupTestResolver(t)
	c := newTestClient(t, resolver, false)

	var resp struct {
		AllTweets []tweet `json:"allTweets"`
	}
	c.MustPost(heredoc.Doc(`
		query {
			allTweets {
				id
				text
				author { id fullName }
			}
		}
	`), &resp)

	if len(resp.AllTweets) != 2 {
		t.Fatalf("allTweets = %+v, want 2 tweets", resp.AllTweets)
	}
	first := resp.AllTweets[0]
	if first.ID != "1" || first.Text != "first one!" {
		t.Errorf("allTweets[0] = %+v", first)
	}
	if first.Author == nil || first.Author.ID != "2" || first.Author.FullName != "Elon Mask" {
		t.Errorf("allTweets[0].author = %+v, want Elon Mask", first.Author)
	}
	second := resp.AllTweets[1]
	if second.Author == nil || second.Author.ID != "1" {
		t.Errorf("allTweets[1].author = %+v, want user 1", second.Author)
	}
}

func TestTweetLookup(t *testing.T) {
	resolver, _ := setupTestResolver(t)
	c := newTestClient(t, resolver, false)

	t.Run("found", func(t *testing.T) {
		var resp struct {
			Tweet *tweet `json:"tweet"`
		}
		c.MustPost(`query($id: ID!) { tweet(id: $id) { id text } }`, &resp, client.Var("id", "2"))
		if resp.Tweet == nil || resp.Tweet.ID != "2" || resp.Tweet.Text != "second one" {
			t.Fatalf("tweet = %+v, want tweet 2", resp.Tweet)
		}
	})

	t.Run("missing", func(t *testing.T) {
		var resp struct {
			Tweet *tweet `json:"tweet"`
		}
		if err := c.Post(`{ tweet(id: "nonexistent") { id } }`, &resp); err != nil {
			t.Fatalf("tweet(nonexistent) error = %v", err)
		}
		if resp.Tweet != nil {
			t.Fatalf("tweet(nonexistent) = %+v, want null", resp.Tweet)
		}
	})
}

func TestPostThenDeleteScenario(t *testing.T) {
	resolver, _ := setupTestResolver(t)
	c := newTestClient(t, resolver, false)

	var posted struct {
		PostTweet tweet `json:"postTweet"`
	}
	c.MustPost(heredoc.Doc(`
		mutation($text: String!, $userId: ID!) {
			postTweet(text: $text, userId: $userId) {
				id
				text
				author { id }
			}
		}
	`), &posted, client.Var("text", "gm"), client.Var("userId", "2"))

	if posted.PostTweet.ID != "3" || posted.PostTweet.Text != "gm" {
		t.Fatalf("postTweet = %+v, want id 3 text gm", posted.PostTweet)
	}
	if posted.PostTweet.Author == nil || posted.PostTweet.Author.ID != "2" {
		t.Fatalf("postTweet.author = %+v, want user 2", posted.PostTweet.Author)
	}

	var list struct {
		AllTweets []tweet `json:"allTweets"`
	}
	c.MustPost(`{ allTweets { id } }`, &list)
	if n := len(list.AllTweets); n != 3 || list.AllTweets[n-1].ID != "3" {
		t.Fatalf("allTweets after post = %+v, want new tweet last", list.AllTweets)
	}

	var deleted struct {
		DeleteTweet bool `json:"deleteTweet"`
	}
	c.MustPost(`mutation { deleteTweet(id: "1") }`, &deleted)
	if !deleted.DeleteTweet {
		t.Fatal(`deleteTweet("1") = false, want true`)
	}

	c.MustPost(`{ allTweets { id } }`, &list)
	for _, tw := range list.AllTweets {
		if tw.ID == "1" {
			t.Fatalf(`tweet "1" still listed: %+v`, list.AllTweets)
		}
	}

	c.MustPost(`mutation { deleteTweet(id: "1") }`, &deleted)
	if deleted.DeleteTweet {
		t.Fatal(`second deleteTweet("1") = true, want false`)
	}
	c.MustPost(`{ allTweets { id } }`, &list)
	if len(list.AllTweets) != 2 {
		t.Fatalf("allTweets after repeated delete = %+v, want 2 tweets", list.AllTweets)
	}
}

func TestPostedIDsAreNotReused(t *testing.T) {
	resolver, _ := setupTestResolver(t)
	c := newTestClient(t, resolver, false)

	var resp struct {
		A tweet `json:"a"`
		D bool  `json:"d"`
		B tweet `json:"b"`
	}
	c.MustPost(heredoc.Doc(`
		mutation {
			a: postTweet(text: "one", userId: "1") { id }
			d: deleteTweet(id: "2")
			b: postTweet(text: "two", userId: "1") { id }
		}
	`), &resp)

	if !resp.D {
		t.Fatal(`deleteTweet("2") = false`)
	}
	if resp.A.ID == resp.B.ID {
		t.Fatalf("postTweet reused id %q", resp.A.ID)
	}
	if resp.A.ID != "3" || resp.B.ID != "4" {
		t.Fatalf("ids = %q, %q, want 3, 4", resp.A.ID, resp.B.ID)
	}
}

func TestAuthorMissingUser(t *testing.T) {
	resolver, st := setupTestResolver(t)
	c := newTestClient(t, resolver, false)
	orphan := st.InsertTweet("hello", "404")

	var resp struct {
		Tweet *tweet `json:"tweet"`
	}
	if err := c.Post(`query($id: ID!) { tweet(id: $id) { id author { id } } }`, &resp, client.Var("id", orphan.ID)); err != nil {
		t.Fatalf("tweet error = %v", err)
	}
	if resp.Tweet == nil {
		t.Fatal("tweet = null, want orphan tweet")
	}
	if resp.Tweet.Author != nil {
		t.Fatalf("author = %+v, want null", resp.Tweet.Author)
	}
}

func TestAliasesFragmentsAndTypename(t *testing.T) {
	resolver, _ := setupTestResolver(t)
	c := newTestClient(t, resolver, false)

	var resp struct {
		First struct {
			Typename string `json:"__typename"`
			Text     string `json:"text"`
		} `json:"first"`
		Second struct {
			Text string `json:"text"`
		} `json:"second"`
	}
	c.MustPost(heredoc.Doc(`
		{
			first: tweet(id: "1") { __typename ...TweetText }
			second: tweet(id: "2") { ...TweetText }
		}
		fragment TweetText on Tweet { text }
	`), &resp)

	if resp.First.Typename != "Tweet" {
		t.Errorf("__typename = %q, want Tweet", resp.First.Typename)
	}
	if resp.First.Text != "first one!" || resp.Second.Text != "second one" {
		t.Errorf("texts = %q, %q", resp.First.Text, resp.Second.Text)
	}
}

func TestResponsePreservesSelectionOrder(t *testing.T) {
	resolver, _ := setupTestResolver(t)
	srv := handler.New(NewExecutableSchema(Config{Resolvers: resolver}))
	srv.AddTransport(transport.POST{})

	body := `{"query":"{ tweet(id: \"1\") { text id __typename } }"}`
	req := httptest.NewRequest(http.MethodPost, "/query", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	want := `{"data":{"tweet":{"text":"first one!","id":"1","__typename":"Tweet"}}}`
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Fatalf("body = %s, want %s", got, want)
	}
}

func TestIntrospection(t *testing.T) {
	resolver, _ := setupTestResolver(t)

	t.Run("enabled", func(t *testing.T) {
		c := newTestClient(t, resolver, true)
		var resp struct {
			Schema struct {
				QueryType    struct{ Name string } `json:"queryType"`
				MutationType struct{ Name string } `json:"mutationType"`
			} `json:"__schema"`
			Type struct {
				Name   string `json:"name"`
				Kind   string `json:"kind"`
				Fields []struct {
					Name string `json:"name"`
					Type struct {
						Kind   string `json:"kind"`
						OfType *struct {
							Name string `json:"name"`
						} `json:"ofType"`
					} `json:"type"`
				} `json:"fields"`
			} `json:"__type"`
		}
		c.MustPost(heredoc.Doc(`
			{
				__schema { queryType { name } mutationType { name } }
				__type(name: "Tweet") {
					name
					kind
					fields { name type { kind ofType { name } } }
				}
			}
		`), &resp)

		if resp.Schema.QueryType.Name != "Query" || resp.Schema.MutationType.Name != "Mutation" {
			t.Fatalf("__schema = %+v", resp.Schema)
		}
		if resp.Type.Name != "Tweet" || resp.Type.Kind != "OBJECT" {
			t.Fatalf("__type = %+v", resp.Type)
		}
		var names []string
		for _, f := range resp.Type.Fields {
			names = append(names, f.Name)
		}
		if strings.Join(names, ",") != "id,text,author" {
			t.Fatalf("Tweet fields = %v, want id,text,author", names)
		}
		if id := resp.Type.Fields[0]; id.Type.Kind != "NON_NULL" || id.Type.OfType == nil || id.Type.OfType.Name != "ID" {
			t.Fatalf("Tweet.id type = %+v, want ID!", id.Type)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		c := newTestClient(t, resolver, true)
		var resp struct {
			Type *struct{ Name string } `json:"__type"`
		}
		c.MustPost(`{ __type(name: "Nope") { name } }`, &resp)
		if resp.Type != nil {
			t.Fatalf("__type(Nope) = %+v, want null", resp.Type)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		c := newTestClient(t, resolver, false)
		var resp struct{}
		err := c.Post(`{ __schema { queryType { name } } }`, &resp)
		if err == nil || !strings.Contains(err.Error(), "introspection disabled") {
			t.Fatalf("expected introspection disabled error, got %v", err)
		}
	})
}

func TestFullIntrospectionQuery(t *testing.T) {
	resolver, _ := setupTestResolver(t)
	c := newTestClient(t, resolver, true)

	type inputValue struct {
		Name string `json:"name"`
	}
	var resp struct {
		Schema struct {
			Types []struct {
				Name   string `json:"name"`
				Fields []struct {
					Name string       `json:"name"`
					Args []inputValue `json:"args"`
				} `json:"fields"`
			} `json:"types"`
		} `json:"__schema"`
	}
	if err := c.Post(introspection.Query, &resp); err != nil {
		t.Fatalf("introspection query returned errors: %v", err)
	}

	fields := map[string][]inputValue{}
	for _, typ := range resp.Schema.Types {
		for _, f := range typ.Fields {
			if f.Args == nil {
				t.Errorf("%s.%s args = null, want a list", typ.Name, f.Name)
			}
			fields[typ.Name+"."+f.Name] = f.Args
		}
	}

	for _, key := range []string{"Query.allUsers", "Query.allTweets", "Query.tweet", "Mutation.postTweet", "Mutation.deleteTweet", "User.fullName", "Tweet.author"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("introspection is missing %s", key)
		}
	}
	if args := fields["Query.allUsers"]; len(args) != 0 {
		t.Errorf("Query.allUsers args = %+v, want none", args)
	}
	if args := fields["Mutation.postTweet"]; len(args) != 2 || args[0].Name != "text" || args[1].Name != "userId" {
		t.Errorf("Mutation.postTweet args = %+v, want text, userId", args)
	}
}

type stubRoot struct {
	*Resolver
	query QueryResolver
}

func (s stubRoot) Query() QueryResolver { return s.query }

type stubQuery struct {
	*queryResolver
	allUsers func(ctx context.Context) ([]*model.User, error)
	tweet    func(ctx context.Context, id string) (*model.Tweet, error)
}

func (q stubQuery) AllUsers(ctx context.Context) ([]*model.User, error) {
	if q.allUsers != nil {
		return q.allUsers(ctx)
	}
	return q.queryResolver.AllUsers(ctx)
}

func (q stubQuery) Tweet(ctx context.Context, id string) (*model.Tweet, error) {
	if q.tweet != nil {
		return q.tweet(ctx, id)
	}
	return q.queryResolver.Tweet(ctx, id)
}

func newStubRoot(t *testing.T, q stubQuery) stubRoot {
	t.Helper()
	resolver, _ := setupTestResolver(t)
	q.queryResolver = &queryResolver{resolver}
	return stubRoot{Resolver: resolver, query: q}
}

func TestNilListIsEmpty(t *testing.T) {
	c := newTestClient(t, newStubRoot(t, stubQuery{
		allUsers: func(context.Context) ([]*model.User, error) {
			return nil, nil
		},
	}), false)

	resp, err := c.RawPost(`{ allUsers { id } }`)
	if err != nil {
		t.Fatalf("RawPost error = %v", err)
	}
	if len(resp.Errors) != 0 {
		t.Fatalf("errors = %s, want none", resp.Errors)
	}
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data = %#v", resp.Data)
	}
	users, ok := data["allUsers"].([]interface{})
	if !ok || len(users) != 0 {
		t.Fatalf("allUsers = %#v, want []", data["allUsers"])
	}
}

func TestNonNullViolationNullsParent(t *testing.T) {
	c := newTestClient(t, newStubRoot(t, stubQuery{
		allUsers: func(context.Context) ([]*model.User, error) {
			return []*model.User{{ID: "1"}, nil}, nil
		},
	}), false)

	resp, err := c.RawPost(`{ allUsers { id } }`)
	if err != nil {
		t.Fatalf("RawPost error = %v", err)
	}
	if resp.Data != nil {
		t.Fatalf("data = %#v, want null", resp.Data)
	}
	if !strings.Contains(string(resp.Errors), "the requested element is null which the schema does not allow") {
		t.Fatalf("errors = %s, want non-null violation", resp.Errors)
	}
	if !strings.Contains(string(resp.Errors), `"path":["allUsers",1]`) {
		t.Fatalf("errors = %s, want path allUsers.1", resp.Errors)
	}
}

func TestResolverErrorOnNullableField(t *testing.T) {
	c := newTestClient(t, newStubRoot(t, stubQuery{
		tweet: func(context.Context, string) (*model.Tweet, error) {
			return nil, errors.New("boom")
		},
		allUsers: func(context.Context) ([]*model.User, error) {
			return []*model.User{{ID: "7", FirstName: "a", LastName: "b"}}, nil
		},
	}), false)

	var resp struct {
		Tweet    *tweet `json:"tweet"`
		AllUsers []struct {
			ID string `json:"id"`
		} `json:"allUsers"`
	}
	err := c.Post(`{ tweet(id: "1") { id } allUsers { id } }`, &resp)
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected boom error, got %v", err)
	}
	if resp.Tweet != nil {
		t.Fatalf("tweet = %+v, want null", resp.Tweet)
	}
	if len(resp.AllUsers) != 1 || resp.AllUsers[0].ID != "7" {
		t.Fatalf("allUsers = %+v, want sibling data kept", resp.AllUsers)
	}
}

func TestResolverPanicIsRecovered(t *testing.T) {
	c := newTestClient(t, newStubRoot(t, stubQuery{
		tweet: func(context.Context, string) (*model.Tweet, error) {
			panic("kaboom")
		},
	}), false)

	var resp struct {
		Tweet *tweet `json:"tweet"`
	}
	if err := c.Post(`{ tweet(id: "1") { id } }`, &resp); err == nil {
		t.Fatal("expected error from panicking resolver")
	}
	if resp.Tweet != nil {
		t.Fatalf("tweet = %+v, want null", resp.Tweet)
	}
}

func TestFieldResolvers(t *testing.T) {
	resolver, _ := setupTestResolver(t)
	ctx := context.Background()

	t.Run("fullName", func(t *testing.T) {
		got, err := resolver.User().FullName(ctx, &model.User{FirstName: "nico", LastName: "las"})
		if err != nil {
			t.Fatalf("FullName() error = %v", err)
		}
		if got != "nico las" {
			t.Errorf("FullName() = %q, want %q", got, "nico las")
		}
	})

	t.Run("author", func(t *testing.T) {
		got, err := resolver.Tweet().Author(ctx, &model.Tweet{ID: "1", UserID: "2"})
		if err != nil {
			t.Fatalf("Author() error = %v", err)
		}
		if got == nil || got.ID != "2" {
			t.Errorf("Author() = %#v, want user 2", got)
		}

		got, err = resolver.Tweet().Author(ctx, &model.Tweet{ID: "1", UserID: "missing"})
		if err != nil {
			t.Fatalf("Author() error = %v", err)
		}
		if got != nil {
			t.Errorf("Author() = %#v, want nil", got)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := resolver.Query().AllTweets(cctx)
		if err == nil || !strings.Contains(err.Error(), "request canceled") {
			t.Errorf("AllTweets() error = %v, want request canceled", err)
		}
	})
}

func TestSchemaDefinitions(t *testing.T) {
	schema := NewExecutableSchema(Config{}).Schema()

	tests := []struct {
		typ, field, want string
	}{
		{typ: "User", field: "fullName", want: "String!"},
		{typ: "Tweet", field: "author", want: "User"},
		{typ: "Query", field: "allUsers", want: "[User!]!"},
		{typ: "Query", field: "tweet", want: "Tweet"},
		{typ: "Mutation", field: "postTweet", want: "Tweet!"},
		{typ: "Mutation", field: "deleteTweet", want: "Boolean!"},
	}
	for _, tc := range tests {
		def := schema.Types[tc.typ]
		if def == nil {
			t.Fatalf("schema has no type %s", tc.typ)
		}
		f := def.Fields.ForName(tc.field)
		if f == nil {
			t.Errorf("%s has no field %s", tc.typ, tc.field)
			continue
		}
		if got := f.Type.String(); got != tc.want {
			t.Errorf("%s.%s type = %s, want %s", tc.typ, tc.field, got, tc.want)
		}
	}
}
