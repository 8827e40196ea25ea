package main

import (
	"testing"

	"github.com/eshaffer321/runbook-go/pkg/runbook"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// TestServerInitialization catches jsonschema tag errors and other tool
// registration problems that would otherwise panic at startup
func TestServerInitialization(t *testing.T) {
	client, err := runbook.NewClientWithToken("https://docs.example.com", "token")
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "runbook",
		Version: "1.0.0",
	}, nil)

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Server initialization panicked: %v", r)
		}
	}()

	registerTools(server, client)
}
