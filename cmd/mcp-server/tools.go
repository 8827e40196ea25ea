package main

import (
	"context"
	"fmt"

	"github.com/eshaffer321/runbook-go/pkg/runbook"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// runbookTools holds the Runbook client and implements all tool handlers
type runbookTools struct {
	client *runbook.Client
}

// GetBooks tool - lists books matching a search term
type GetBooksInput struct {
	Query string `json:"query,omitempty" jsonschema:"Search term matched against book names (optional, empty lists all books)"`
}

type BookEntry struct {
	UID         string `json:"uid" jsonschema:"Book UID"`
	Name        string `json:"name" jsonschema:"Book name"`
	Description string `json:"description,omitempty" jsonschema:"Book description"`
	Type        string `json:"type,omitempty" jsonschema:"Book type"`
	Path        string `json:"path,omitempty" jsonschema:"Book path on the Runbook site"`
	Workspace   string `json:"workspace,omitempty" jsonschema:"Workspace the book belongs to"`
}

type GetBooksOutput struct {
	Books []BookEntry `json:"books" jsonschema:"List of books"`
	Count int         `json:"count" jsonschema:"Number of books returned"`
}

func (t *runbookTools) GetBooks(ctx context.Context, req *mcp.CallToolRequest, input GetBooksInput) (*mcp.CallToolResult, GetBooksOutput, error) {
	books, err := t.client.GetBooks(ctx, &runbook.GetBooksVariables{Q: input.Query})
	if err != nil {
		return nil, GetBooksOutput{}, fmt.Errorf("failed to fetch books: %w", err)
	}

	entries := make([]BookEntry, 0, len(books))
	for _, b := range books {
		entries = append(entries, BookEntry{
			UID:         b.UID,
			Name:        b.Name,
			Description: b.Description,
			Type:        b.BookType,
			Path:        b.Pathname,
			Workspace:   b.Workspace.Name,
		})
	}

	return nil, GetBooksOutput{
		Books: entries,
		Count: len(entries),
	}, nil
}

// GetArticles tool - lists the articles of a book
type GetArticlesInput struct {
	BookUID     string `json:"bookUid" jsonschema:"UID of the book to list"`
	Query       string `json:"query,omitempty" jsonschema:"Keyword filter (optional)"`
	CategoryUID string `json:"categoryUid,omitempty" jsonschema:"Only articles in this category (optional)"`
	Limit       int    `json:"limit,omitempty" jsonschema:"Maximum number of articles to return (default: 20)"`
	Offset      int    `json:"offset,omitempty" jsonschema:"Number of articles to skip (optional)"`
}

type ArticleEntry struct {
	UID       string `json:"uid" jsonschema:"Article UID"`
	Name      string `json:"name" jsonschema:"Article title"`
	Slug      string `json:"slug,omitempty" jsonschema:"Article slug"`
	Snippet   string `json:"snippet,omitempty" jsonschema:"Beginning of the article body"`
	UpdatedAt string `json:"updatedAt,omitempty" jsonschema:"Last update time"`
}

type GetArticlesOutput struct {
	Book       string         `json:"book" jsonschema:"Name of the book"`
	Articles   []ArticleEntry `json:"articles" jsonschema:"Page of articles"`
	Count      int            `json:"count" jsonschema:"Number of articles returned"`
	TotalCount int            `json:"totalCount" jsonschema:"Number of articles matching the filters"`
}

func (t *runbookTools) GetArticles(ctx context.Context, req *mcp.CallToolRequest, input GetArticlesInput) (*mcp.CallToolResult, GetArticlesOutput, error) {
	if input.BookUID == "" {
		return nil, GetArticlesOutput{}, fmt.Errorf("bookUid is required")
	}

	list, err := t.client.GetArticles(ctx, &runbook.GetArticlesVariables{
		BookUID:     input.BookUID,
		Q:           input.Query,
		CategoryUID: input.CategoryUID,
		First:       input.Limit,
		Offset:      input.Offset,
	})
	if err != nil {
		return nil, GetArticlesOutput{}, fmt.Errorf("failed to fetch articles: %w", err)
	}

	entries := make([]ArticleEntry, 0, len(list.Nodes))
	for _, a := range list.Nodes {
		entries = append(entries, ArticleEntry{
			UID:       a.UID,
			Name:      a.Name,
			Slug:      a.Slug,
			Snippet:   a.BodySnippet,
			UpdatedAt: a.UpdatedAt,
		})
	}

	return nil, GetArticlesOutput{
		Book:       list.BookName,
		Articles:   entries,
		Count:      len(entries),
		TotalCount: list.TotalCount,
	}, nil
}

// GetArticle tool - fetches a single article
type GetArticleInput struct {
	ArticleUID string `json:"articleUid" jsonschema:"UID of the article"`
}

type GetArticleOutput struct {
	UID        string   `json:"uid" jsonschema:"Article UID"`
	Name       string   `json:"name" jsonschema:"Article title"`
	Body       string   `json:"body" jsonschema:"Full article body as plain text"`
	Book       string   `json:"book,omitempty" jsonschema:"Name of the book"`
	Folder     string   `json:"folder,omitempty" jsonschema:"Name of the folder"`
	Categories []string `json:"categories" jsonschema:"Names of the article categories"`
	UpdatedAt  string   `json:"updatedAt,omitempty" jsonschema:"Last update time"`
}

func (t *runbookTools) GetArticle(ctx context.Context, req *mcp.CallToolRequest, input GetArticleInput) (*mcp.CallToolResult, GetArticleOutput, error) {
	article, err := t.client.GetArticle(ctx, input.ArticleUID)
	if err != nil {
		return nil, GetArticleOutput{}, fmt.Errorf("failed to fetch article: %w", err)
	}

	output := GetArticleOutput{
		UID:        article.UID,
		Name:       article.Name,
		Body:       article.BodyText,
		Categories: make([]string, 0, len(article.AllCategories)),
		UpdatedAt:  article.UpdatedAt,
	}
	if article.Book != nil {
		output.Book = article.Book.Name
	}
	if article.Folder != nil {
		output.Folder = article.Folder.Name
	}
	for _, c := range article.AllCategories {
		output.Categories = append(output.Categories, c.Name)
	}

	return nil, output, nil
}

// GetCategories tool - lists the categories of a book
type GetCategoriesInput struct {
	BookUID string `json:"bookUid" jsonschema:"UID of the book"`
}

type CategoryEntry struct {
	UID  string `json:"uid" jsonschema:"Category UID"`
	Name string `json:"name" jsonschema:"Category name"`
}

type GetCategoriesOutput struct {
	Categories []CategoryEntry `json:"categories" jsonschema:"List of categories"`
	Count      int             `json:"count" jsonschema:"Number of categories"`
}

func (t *runbookTools) GetCategories(ctx context.Context, req *mcp.CallToolRequest, input GetCategoriesInput) (*mcp.CallToolResult, GetCategoriesOutput, error) {
	categories, err := t.client.GetCategories(ctx, input.BookUID)
	if err != nil {
		return nil, GetCategoriesOutput{}, fmt.Errorf("failed to fetch categories: %w", err)
	}

	entries := make([]CategoryEntry, 0, len(categories))
	for _, c := range categories {
		entries = append(entries, CategoryEntry{UID: c.UID, Name: c.Name})
	}

	return nil, GetCategoriesOutput{
		Categories: entries,
		Count:      len(entries),
	}, nil
}

// Search tool - full text search
type SearchInput struct {
	Keywords string `json:"keywords" jsonschema:"Words to search for"`
	BookUID  string `json:"bookUid,omitempty" jsonschema:"Restrict the search to this book (optional)"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default: 20)"`
	Offset   int    `json:"offset,omitempty" jsonschema:"Number of results to skip (optional)"`
}

type SearchEntry struct {
	UID     string `json:"uid" jsonschema:"Node UID"`
	Type    string `json:"type" jsonschema:"Node type, e.g. Article"`
	Name    string `json:"name" jsonschema:"Node name"`
	Book    string `json:"book,omitempty" jsonschema:"Name of the containing book"`
	URL     string `json:"url,omitempty" jsonschema:"Link to the node"`
	Snippet string `json:"snippet,omitempty" jsonschema:"Matching text"`
}

type SearchOutput struct {
	Results    []SearchEntry `json:"results" jsonschema:"Search hits"`
	Count      int           `json:"count" jsonschema:"Number of results returned"`
	TotalCount int           `json:"totalCount" jsonschema:"Total number of hits"`
}

func (t *runbookTools) Search(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	results, err := t.client.Search(ctx, &runbook.SearchVariables{
		Scope:    input.BookUID,
		Keywords: input.Keywords,
		Limit:    limit,
		Offset:   input.Offset,
	})
	if err != nil {
		return nil, SearchOutput{}, fmt.Errorf("failed to search: %w", err)
	}

	entries := make([]SearchEntry, 0, len(results.Nodes))
	for _, r := range results.Nodes {
		entries = append(entries, SearchEntry{
			UID:     r.UID,
			Type:    r.NodeType,
			Name:    r.Name,
			Book:    r.BookName,
			URL:     r.URL,
			Snippet: r.BodySnippet,
		})
	}

	return nil, SearchOutput{
		Results:    entries,
		Count:      len(entries),
		TotalCount: results.TotalCount,
	}, nil
}
