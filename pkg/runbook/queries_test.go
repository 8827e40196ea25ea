package runbook

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/eshaffer321/runbook-go/internal/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockGraphQL is a mock implementation of the GraphQL transport
type MockGraphQL struct {
	mock.Mock
}

func (m *MockGraphQL) Execute(ctx context.Context, query string, variables map[string]interface{}, result interface{}) error {
	args := m.Called(ctx, query, variables, result)

	// If mock provides result data, unmarshal it
	if args.Get(0) != nil {
		resultJSON := args.Get(0).(string)
		if err := json.Unmarshal([]byte(resultJSON), result); err != nil {
			return err
		}
	}

	return args.Error(1)
}

func (m *MockGraphQL) Endpoint() string {
	return "https://docs.example.com/api/graphql"
}

func newMockClient() (*Client, *MockGraphQL) {
	gql := new(MockGraphQL)
	return &Client{
		baseURL: "https://docs.example.com",
		graphql: gql,
		options: &ClientOptions{},
	}, gql
}

func TestClient_GetBooks(t *testing.T) {
	client, gql := newMockClient()

	mockResponse := `{
		"organization": {
			"books": {
				"nodes": [
					{
						"uid": "b1",
						"name": "Operations",
						"description": "On-call handbook",
						"pathname": "/books/b1",
						"bookType": "manual",
						"workspace": {"uid": "w1", "name": "Eng"}
					}
				]
			}
		}
	}`

	gql.On("Execute",
		mock.Anything,
		graphql.MustLookup(QueryGetBooks),
		map[string]interface{}{"q": "ops"},
		mock.Anything,
	).Return(mockResponse, nil)

	books, err := client.GetBooks(context.Background(), &GetBooksVariables{Q: "ops"})

	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Operations", books[0].Name)
	assert.Equal(t, "manual", books[0].BookType)
	assert.Equal(t, "Eng", books[0].Workspace.Name)
	gql.AssertExpectations(t)
}

func TestClient_GetBooks_NilVariables(t *testing.T) {
	client, gql := newMockClient()

	gql.On("Execute",
		mock.Anything,
		graphql.MustLookup(QueryGetBooks),
		map[string]interface{}{"q": ""},
		mock.Anything,
	).Return(`{"organization":{"books":{"nodes":[]}}}`, nil)

	books, err := client.GetBooks(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, books)
	gql.AssertExpectations(t)
}

func TestClient_GetArticles(t *testing.T) {
	client, gql := newMockClient()

	mockResponse := `{
		"node": {
			"__typename": "Book",
			"name": "Operations",
			"articles": {
				"totalCount": 42,
				"nodes": [
					{"uid": "a1", "name": "Restart", "slug": "restart", "id": "1", "bodySnippet": "Run..."}
				]
			}
		}
	}`

	gql.On("Execute",
		mock.Anything,
		graphql.MustLookup(QueryGetArticles),
		mock.MatchedBy(func(vars map[string]interface{}) bool {
			_, hasQ := vars["q"]
			return vars["bookUid"] == "b1" && vars["first"] == json.Number("5") && !hasQ
		}),
		mock.Anything,
	).Return(mockResponse, nil)

	list, err := client.GetArticles(context.Background(), &GetArticlesVariables{BookUID: "b1", First: 5})

	require.NoError(t, err)
	assert.Equal(t, 42, list.TotalCount)
	assert.Equal(t, "Operations", list.BookName)
	require.Len(t, list.Nodes, 1)
	assert.Equal(t, "Run...", list.Nodes[0].BodySnippet)
	gql.AssertExpectations(t)
}

func TestClient_GetArticles_RequiresBook(t *testing.T) {
	client, gql := newMockClient()

	_, err := client.GetArticles(context.Background(), &GetArticlesVariables{})

	assert.Error(t, err)
	gql.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestClient_GetArticle(t *testing.T) {
	client, gql := newMockClient()

	mockResponse := `{
		"node": {
			"__typename": "Article",
			"uid": "a1",
			"name": "Restart",
			"bodyText": "Run the restart script.",
			"allCategories": [{"uid": "c1", "name": "Ops"}],
			"folder": {"uid": "f1", "name": "Procedures"},
			"book": {"uid": "b1", "name": "Operations"}
		}
	}`

	gql.On("Execute",
		mock.Anything,
		graphql.MustLookup(QueryGetArticle),
		map[string]interface{}{"articleUid": "a1"},
		mock.Anything,
	).Return(mockResponse, nil)

	article, err := client.GetArticle(context.Background(), "a1")

	require.NoError(t, err)
	assert.Equal(t, "Run the restart script.", article.BodyText)
	assert.Equal(t, "Procedures", article.Folder.Name)
	assert.Equal(t, "Operations", article.Book.Name)
	require.Len(t, article.AllCategories, 1)
	gql.AssertExpectations(t)
}

func TestClient_GetArticle_NullNode(t *testing.T) {
	client, gql := newMockClient()

	gql.On("Execute", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(`{"node": null}`, nil)

	_, err := client.GetArticle(context.Background(), "gone")

	assert.True(t, IsNotFound(err))
}

func TestClient_GetCategories(t *testing.T) {
	client, gql := newMockClient()

	gql.On("Execute",
		mock.Anything,
		graphql.MustLookup(QueryGetCategories),
		map[string]interface{}{"bookUid": "b1"},
		mock.Anything,
	).Return(`{"node":{"__typename":"Book","categories":{"nodes":[{"uid":"c1","name":"Ops"},{"uid":"c2","name":"Dev"}]}}}`, nil)

	categories, err := client.GetCategories(context.Background(), "b1")

	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Dev", categories[1].Name)
}

func TestClient_Search(t *testing.T) {
	client, gql := newMockClient()

	gql.On("Execute",
		mock.Anything,
		graphql.MustLookup(QuerySearch),
		map[string]interface{}{"keywords": "deploy", "limit": json.Number("10")},
		mock.Anything,
	).Return(`{"searchResults":{"totalCount":1,"nodes":[{"uid":"a1","nodeType":"Article","bookUid":"b1","url":"https://docs/a1"}]}}`, nil)

	results, err := client.Search(context.Background(), &SearchVariables{Keywords: "deploy", Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, 1, results.TotalCount)
	assert.Equal(t, "b1", results.Nodes[0].BookUID)
	assert.Equal(t, "https://docs/a1", results.Nodes[0].URL)
}

func TestClient_Search_RequiresKeywords(t *testing.T) {
	client, _ := newMockClient()

	_, err := client.Search(context.Background(), &SearchVariables{})
	assert.Error(t, err)
}

func TestClient_TypedQueryErrorsKeepClassification(t *testing.T) {
	client, gql := newMockClient()

	gql.On("Execute", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &RequestError{
			Kind:       HTTPFailure,
			StatusCode: 401,
			Messages:   []string{"invalid token"},
			Attributes: map[string][]ErrorDetail{BaseAttribute: {{Message: "invalid token", Code: "invalid token"}}},
		})

	_, err := client.GetBooks(context.Background(), &GetBooksVariables{Q: "x"})

	assert.True(t, IsAuthError(err))
	reqErr, ok := AsRequestError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"invalid token"}, reqErr.Messages)
}

func TestClient_TransportErrorPassesThrough(t *testing.T) {
	client, gql := newMockClient()
	boom := errors.New("boom")

	gql.On("Execute", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, boom)

	_, err := client.GetCategories(context.Background(), "b1")
	assert.ErrorIs(t, err, boom)
}

func TestQueryNames(t *testing.T) {
	assert.Equal(t, []string{
		QueryGetArticle,
		QueryGetArticles,
		QueryGetBooks,
		QueryGetCategories,
		QuerySearch,
	}, QueryNames())
}

func TestToVariables(t *testing.T) {
	vars, err := toVariables(&SearchVariables{Keywords: "k", Scope: "b1"})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"keywords": "k", "scope": "b1"}, vars)

	vars, err = toVariables(nil)
	require.NoError(t, err)
	assert.Nil(t, vars)
}
