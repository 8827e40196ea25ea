package main

import (
	"context"
	"os"

	"github.com/eshaffer321/runbook-go/pkg/runbook"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

func main() {
	// stdout carries the MCP protocol, zap's production config logs to stderr
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	// .env is optional
	_ = godotenv.Load()

	baseURL := os.Getenv("RUNBOOK_BASE_URL")
	token := os.Getenv("RUNBOOK_API_TOKEN")
	if baseURL == "" || token == "" {
		logger.Fatal("RUNBOOK_BASE_URL and RUNBOOK_API_TOKEN environment variables are required")
	}

	client, err := runbook.NewClient(&runbook.ClientOptions{
		BaseURL:   baseURL,
		APIToken:  token,
		Logger:    runbook.NewZapLogger(logger),
		SentryDSN: os.Getenv("SENTRY_DSN"),
	})
	if err != nil {
		logger.Fatal("failed to initialize Runbook client", zap.Error(err))
	}
	defer client.Close()

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "runbook",
		Version: "1.0.0",
	}, nil)

	registerTools(server, client)

	// Run server over stdio transport
	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		logger.Error("server error", zap.Error(err))
	}
}

func registerTools(server *mcp.Server, client *runbook.Client) {
	tools := &runbookTools{client: client}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_books",
		Description: "List the books in the Runbook organization whose name matches a search term. Returns uid, name, description, type and workspace for each book.",
	}, tools.GetBooks)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_articles",
		Description: "List the articles of a book, optionally filtered by keyword or category. Returns a page of articles with a body snippet and the total count.",
	}, tools.GetArticles)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_article",
		Description: "Get a single article with its full body text, categories, folder and book.",
	}, tools.GetArticle)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_categories",
		Description: "List the categories of a book.",
	}, tools.GetCategories)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search",
		Description: "Full text search across Runbook, optionally scoped to a book. Returns matching articles and other nodes with links.",
	}, tools.Search)
}
