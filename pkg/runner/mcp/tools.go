package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListEntriesTool(srv, svc)
	registerAddEntryTool(srv, svc)
	registerUpdateEntryTool(srv, svc)
	registerDeleteEntryTool(srv, svc)
	registerSearchEntriesTool(srv, svc)
	registerSaveFileTool(srv, svc)
	registerLoadFileTool(srv, svc)
}

func entryFieldOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("date",
			mcp.Description("Day of the entry: MM/DD/YY, YYYY-MM-DD or natural language such as \"yesterday\". Defaults to today."),
		),
		mcp.WithString("time",
			mcp.Description("Time of day as HH:MM. Defaults to now."),
		),
		mcp.WithString("place",
			mcp.Description("Where the note was written."),
		),
		mcp.WithString("note",
			mcp.Description("The note text."),
		),
	}
}

func refOptions(verb string) []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("id",
			mcp.Description(fmt.Sprintf("Identifier of the entry to %s, as reported by list_entries.", verb)),
		),
		mcp.WithNumber("index",
			mcp.Description(fmt.Sprintf("Zero-based position of the entry to %s. Used when id is empty.", verb)),
			mcp.Min(0),
		),
	}
}

type entryArgs struct {
	Date  string `json:"date"`
	Time  string `json:"time"`
	Place string `json:"place"`
	Note  string `json:"note"`
}

func (a entryArgs) options() AddEntryOptions {
	return AddEntryOptions{Date: a.Date, Time: a.Time, Place: a.Place, Note: a.Note}
}

func refFrom(request mcp.CallToolRequest) (Ref, error) {
	ref := Ref{ID: request.GetString("id", ""), Index: request.GetInt("index", -1)}
	if ref.ID == "" && ref.Index < 0 {
		return Ref{}, fmt.Errorf("one of id or index is required")
	}
	return ref, nil
}

func registerListEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_entries",
		mcp.WithDescription("List every diary entry in display order, with the current file name and last saved marker."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries, err := svc.ListEntries(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		session, err := svc.Session(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"session": session,
			"entries": entries,
			"count":   len(entries),
		})
	})
}

func registerAddEntryTool(srv *server.MCPServer, svc *Service) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Append a new diary entry. place and note are required."),
	}, entryFieldOptions()...)
	tool := mcp.NewTool("add_entry", opts...)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args entryArgs
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.AddEntry(ctx, args.options())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUpdateEntryTool(srv *server.MCPServer, svc *Service) {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Replace fields of an existing entry. Fields left empty keep their current value."),
	}
	opts = append(opts, refOptions("update")...)
	opts = append(opts, entryFieldOptions()...)
	tool := mcp.NewTool("update_entry", opts...)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := refFrom(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		var args entryArgs
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.UpdateEntry(ctx, ref, args.options())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteEntryTool(srv *server.MCPServer, svc *Service) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Delete an entry. Entries after it move up by one position."),
	}, refOptions("delete")...)
	tool := mcp.NewTool("delete_entry", opts...)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := refFrom(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.DeleteEntry(ctx, ref)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"deleted": dto})
	})
}

func registerSearchEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"search_entries",
		mcp.WithDescription("Search entries by case-insensitive substring across date, place, time and note."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Case-insensitive search text."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries to return (default 20)."),
			mcp.Min(1),
			mcp.Max(100),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		limit := request.GetInt("limit", 20)

		results, err := svc.SearchEntries(ctx, query, limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"query":   query,
			"limit":   limit,
			"results": results,
			"count":   len(results),
		})
	})
}

func registerSaveFileTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"save_file",
		mcp.WithDescription("Export the diary to its JSON file. Fails when there are no entries."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		session, err := svc.SaveFile(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(session)
	})
}

func registerLoadFileTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"load_file",
		mcp.WithDescription("Replace the diary with the entries of a JSON diary file."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path of the diary file on the server host."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, err := request.RequireString("path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		session, err := svc.LoadFile(ctx, path)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(session)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(raw)), nil
}
