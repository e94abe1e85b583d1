package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/tiles/pkg/dashboard"
	"tableflip.dev/tiles/pkg/settings"
	"tableflip.dev/tiles/pkg/widget"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListSpacesTool(srv, svc)
	registerGetSpaceTool(srv, svc)
	registerAddSpaceTool(srv, svc)
	registerRemoveSpaceTool(srv, svc)
	registerAddTileTool(srv, svc)
	registerRemoveTileTool(srv, svc)
	registerResizeTileTool(srv, svc)
	registerWidgetActionTool(srv, svc)
	registerGetSettingsTool(srv, svc)
	registerSetSettingTool(srv, svc)
}

func kindNames() []string {
	kinds := widget.AllKinds()
	out := make([]string, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, strings.ToLower(string(k)))
	}
	return out
}

func sizeNames() []string {
	out := make([]string, 0, len(dashboard.Sizes))
	for _, s := range dashboard.Sizes {
		out = append(out, string(s))
	}
	return out
}

func registerListSpacesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_spaces",
		mcp.WithDescription("List every space with its theme, icon and tile count."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		spaces, err := svc.ListSpaces(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"spaces": spaces,
			"count":  len(spaces),
		})
	})
}

func registerGetSpaceTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_space",
		mcp.WithDescription("Fetch one space with all of its tiles and their content."),
		mcp.WithString("space",
			mcp.Required(),
			mcp.Description("Identifier of the space."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("space")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		sp, err := svc.Space(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(sp)
	})
}

func registerAddSpaceTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_space",
		mcp.WithDescription("Create a new empty space."),
		mcp.WithString("label",
			mcp.Required(),
			mcp.Description("Display name of the space."),
		),
		mcp.WithString("theme",
			mcp.Description("Accent colour of the space."),
			mcp.Enum(dashboard.Themes...),
		),
		mcp.WithString("icon",
			mcp.Description("Dock icon of the space."),
			mcp.Enum(dashboard.Icons...),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Label string `json:"label"`
			Theme string `json:"theme"`
			Icon  string `json:"icon"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if strings.TrimSpace(args.Label) == "" {
			return mcp.NewToolResultError("label is required"), nil
		}
		sp, err := svc.AddSpace(ctx, args.Label, args.Theme, args.Icon)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(sp)
	})
}

func registerRemoveSpaceTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"remove_space",
		mcp.WithDescription("Delete a space and all of its tiles. The last space cannot be removed."),
		mcp.WithString("space",
			mcp.Required(),
			mcp.Description("Identifier of the space to delete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("space")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.RemoveSpace(ctx, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"removed": id})
	})
}

func registerAddTileTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_tile",
		mcp.WithDescription("Add a widget tile to a space."),
		mcp.WithString("space",
			mcp.Required(),
			mcp.Description("Identifier of the space that should hold the tile."),
		),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("Widget type of the tile."),
			mcp.Enum(kindNames()...),
		),
		mcp.WithString("title",
			mcp.Description("Optional tile title. Defaults to the widget name."),
		),
		mcp.WithString("size",
			mcp.Description("Optional tile size. Defaults to the widget's preferred size."),
			mcp.Enum(sizeNames()...),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Space string `json:"space"`
			Type  string `json:"type"`
			Title string `json:"title"`
			Size  string `json:"size"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		tile, err := svc.AddTile(ctx, AddTileOptions{
			Space: args.Space,
			Kind:  args.Type,
			Title: args.Title,
			Size:  args.Size,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(tile)
	})
}

func registerRemoveTileTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"remove_tile",
		mcp.WithDescription("Remove a tile from a space."),
		mcp.WithString("space",
			mcp.Required(),
			mcp.Description("Identifier of the space."),
		),
		mcp.WithString("tile",
			mcp.Required(),
			mcp.Description("Identifier of the tile to remove."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		spaceID, err := request.RequireString("space")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		tileID, err := request.RequireString("tile")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.RemoveTile(ctx, spaceID, tileID); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"removed": tileID, "space": spaceID})
	})
}

func registerResizeTileTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"resize_tile",
		mcp.WithDescription("Resize a tile. Without a size the tile advances to the next size in the cycle."),
		mcp.WithString("space",
			mcp.Required(),
			mcp.Description("Identifier of the space."),
		),
		mcp.WithString("tile",
			mcp.Required(),
			mcp.Description("Identifier of the tile."),
		),
		mcp.WithString("size",
			mcp.Description("Target size."),
			mcp.Enum(sizeNames()...),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		spaceID, err := request.RequireString("space")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		tileID, err := request.RequireString("tile")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		tile, err := svc.ResizeTile(ctx, spaceID, tileID, request.GetString("size", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(tile)
	})
}

func registerWidgetActionTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"widget_action",
		mcp.WithDescription("Run a widget action on a tile, for example toggle on a timer or add on a todo list. The tile's actions field lists what each widget accepts."),
		mcp.WithString("space",
			mcp.Required(),
			mcp.Description("Identifier of the space."),
		),
		mcp.WithString("tile",
			mcp.Required(),
			mcp.Description("Identifier of the tile."),
		),
		mcp.WithString("action",
			mcp.Required(),
			mcp.Description("Action name such as toggle, add, press, set."),
		),
		mcp.WithArray("args",
			mcp.Description("Positional action arguments."),
			mcp.WithStringItems(),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Space  string   `json:"space"`
			Tile   string   `json:"tile"`
			Action string   `json:"action"`
			Args   []string `json:"args"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		tile, err := svc.WidgetAction(ctx, args.Space, args.Tile, args.Action, args.Args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(tile)
	})
}

func registerGetSettingsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_settings",
		mcp.WithDescription("Read the appearance settings and dark mode flag."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s, dark, err := svc.Settings(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"settings": s,
			"darkMode": dark,
		})
	})
}

func registerSetSettingTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"set_setting",
		mcp.WithDescription("Change one appearance setting. Numeric values are clamped to their allowed range."),
		mcp.WithString("key",
			mcp.Required(),
			mcp.Description("Setting name."),
			mcp.Enum(settings.Keys()...),
		),
		mcp.WithString("value",
			mcp.Required(),
			mcp.Description("New value."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		key, err := request.RequireString("key")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		value, err := request.RequireString("value")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		s, err := svc.SetSetting(ctx, key, value)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(s)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
