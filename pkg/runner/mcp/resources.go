package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerSpacesResource(srv, svc)
	registerSpaceTemplate(srv, svc)
	registerSettingsResource(srv, svc)
}

func registerSpacesResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"tiles://spaces",
		"Spaces",
		mcp.WithResourceDescription("All dashboard spaces with their tile counts."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		spaces, err := svc.ListSpaces(ctx)
		if err != nil {
			return nil, err
		}
		payload := map[string]any{
			"spaces": spaces,
			"count":  len(spaces),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerSpaceTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"tiles://spaces/{id}",
		"Space Tiles",
		mcp.WithTemplateDescription("A single space with every tile and its widget content."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := templateArg(request, "id")
		if id == "" {
			return nil, fmt.Errorf("space id is required")
		}
		sp, err := svc.Space(ctx, id)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"space": sp})
	})
}

func registerSettingsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"tiles://settings",
		"Settings",
		mcp.WithResourceDescription("Appearance settings and dark mode."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		s, dark, err := svc.Settings(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"settings": s,
			"darkMode": dark,
		})
	})
}

// templateArg reads a URI template variable. Depending on the matcher the
// value arrives as a string or a single-element slice.
func templateArg(request mcp.ReadResourceRequest, name string) string {
	switch v := request.Params.Arguments[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
