package runbook

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/eshaffer321/runbook-go/internal/graphql"
	"github.com/pkg/errors"
)

// Names of the predefined queries accepted by Query
const (
	QueryGetBooks      = "getBooks"
	QueryGetArticles   = "getArticles"
	QueryGetArticle    = "getArticle"
	QueryGetCategories = "getCategories"
	QuerySearch        = "search"
)

// QueryNames returns the names of the predefined queries in sorted order
func QueryNames() []string {
	return graphql.Names()
}

// QueryDocument returns the text of a predefined query
func QueryDocument(name string) (string, bool) {
	return graphql.Lookup(name)
}

// GetBooks lists the books matching q. A nil vars lists all books.
func (c *Client) GetBooks(ctx context.Context, vars *GetBooksVariables) ([]*Book, error) {
	if vars == nil {
		// q is required by the document, empty matches every book
		vars = &GetBooksVariables{}
	}

	var result GetBooksResult
	if err := c.queryTyped(ctx, QueryGetBooks, vars, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get books")
	}
	return result.Organization.Books.Nodes, nil
}

// GetArticles lists the articles of a book
func (c *Client) GetArticles(ctx context.Context, vars *GetArticlesVariables) (*ArticleList, error) {
	if vars == nil || vars.BookUID == "" {
		return nil, errors.New("book uid is required")
	}

	var result GetArticlesResult
	if err := c.queryTyped(ctx, QueryGetArticles, vars, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get articles")
	}
	if result.Node == nil {
		return nil, errors.Wrapf(ErrNotFound, "book %s", vars.BookUID)
	}

	list := result.Node.Articles
	list.BookName = result.Node.Name
	return &list, nil
}

// GetArticle fetches a single article with its body and relations
func (c *Client) GetArticle(ctx context.Context, articleUID string) (*Article, error) {
	if articleUID == "" {
		return nil, errors.New("article uid is required")
	}

	var result GetArticleResult
	if err := c.queryTyped(ctx, QueryGetArticle, &GetArticleVariables{ArticleUID: articleUID}, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get article")
	}
	if result.Node == nil {
		return nil, errors.Wrapf(ErrNotFound, "article %s", articleUID)
	}
	return result.Node, nil
}

// GetCategories lists the categories of a book
func (c *Client) GetCategories(ctx context.Context, bookUID string) ([]*Category, error) {
	if bookUID == "" {
		return nil, errors.New("book uid is required")
	}

	var result GetCategoriesResult
	if err := c.queryTyped(ctx, QueryGetCategories, &GetCategoriesVariables{BookUID: bookUID}, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get categories")
	}
	if result.Node == nil {
		return nil, errors.Wrapf(ErrNotFound, "book %s", bookUID)
	}
	return result.Node.Categories.Nodes, nil
}

// Search runs a keyword search, optionally scoped to a book
func (c *Client) Search(ctx context.Context, vars *SearchVariables) (*SearchResults, error) {
	if vars == nil || vars.Keywords == "" {
		return nil, errors.New("keywords are required")
	}

	var result SearchQueryResult
	if err := c.queryTyped(ctx, QuerySearch, vars, &result); err != nil {
		return nil, errors.Wrap(err, "failed to search")
	}
	return &result.SearchResults, nil
}

func (c *Client) queryTyped(ctx context.Context, name string, vars interface{}, out interface{}) error {
	variables, err := toVariables(vars)
	if err != nil {
		return err
	}
	return c.Query(ctx, name, variables, out)
}

// toVariables turns a variables struct into the map sent on the wire
func toVariables(v interface{}) (map[string]interface{}, error) {
	if v == nil {
		return nil, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal variables")
	}

	var variables map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&variables); err != nil {
		return nil, errors.Wrap(err, "failed to decode variables")
	}
	return variables, nil
}
