package mcp

import (
	"context"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"satchel/internal/application"
	"satchel/internal/domain"
)

// Publisher keeps the MCP server's resource list in step with the
// registry. Sync is called after every successful mutating tool call; the
// server sends list_changed notifications as entries come and go.
type Publisher struct {
	srv *server.MCPServer
	reg *application.Registry

	mu         sync.Mutex
	registered map[string]bool
}

// NewPublisher creates a publisher with nothing registered yet.
func NewPublisher(srv *server.MCPServer, reg *application.Registry) *Publisher {
	return &Publisher{
		srv:        srv,
		reg:        reg,
		registered: make(map[string]bool),
	}
}

// Sync registers resources for every readable unit the registry currently
// exposes and removes the ones that are gone.
func (p *Publisher) Sync() {
	descriptors := p.reg.Resources()

	p.mu.Lock()
	defer p.mu.Unlock()

	want := make(map[string]bool, len(descriptors))
	for _, d := range descriptors {
		want[d.URI] = true
		if p.registered[d.URI] {
			continue
		}
		p.srv.AddResource(
			mcp.NewResource(d.URI, d.Name,
				mcp.WithResourceDescription(d.Description),
				mcp.WithMIMEType(d.MIMEType),
			),
			p.read,
		)
		p.registered[d.URI] = true
	}

	for uri := range p.registered {
		if !want[uri] {
			p.srv.RemoveResource(uri)
			delete(p.registered, uri)
		}
	}
}

// read resolves any published resource through the registry.
func (p *Publisher) read(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	content, err := p.reg.Resolve(domain.ParseResourceID(req.Params.URI))
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: content.MIMEType,
			Text:     content.Text,
		},
	}, nil
}
