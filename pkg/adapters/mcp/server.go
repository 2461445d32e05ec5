package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/pkg/adapters/input"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/session"
	"github.com/aretw0/arbor/pkg/shape"
)

// TreeURI is the resource exposing the current snapshot.
const TreeURI = "arbor://tree"

// Visualizer defines what the MCP server needs from arbor.Visualizer.
type Visualizer interface {
	Build(ctx context.Context, values []int) (*arbor.Run, error)
	BuildShaped(ctx context.Context, kind shape.Kind, values []int) (*arbor.Run, error)
	Traverse(ctx context.Context, kind domain.TraversalKind) (*arbor.Run, error)
	Clear(ctx context.Context) (*arbor.Run, error)
	Snapshot() session.Snapshot
}

// BuildArgs are the arguments of build_tree.
type BuildArgs struct {
	Values string `json:"values"`
	Shape  string `json:"shape,omitempty"`
	Wait   bool   `json:"wait,omitempty"`
}

// BuildResponse is the result of build_tree.
type BuildResponse struct {
	Order []int         `json:"order" jsonschema_description:"Values in the order they are inserted"`
	State domain.State  `json:"state" jsonschema_description:"Scheduler state when the tool returned"`
	Stats *domain.Stats `json:"stats,omitempty" jsonschema_description:"Tree statistics, present when wait was set"`
}

// TraverseArgs are the arguments of traverse.
type TraverseArgs struct {
	Kind string `json:"kind"`
	Wait bool   `json:"wait,omitempty"`
}

// TraverseResponse is the result of traverse.
type TraverseResponse struct {
	Kind      domain.TraversalKind `json:"kind"`
	State     domain.State         `json:"state"`
	Values    []int                `json:"values,omitempty" jsonschema_description:"Visited values, present when wait was set"`
	Formatted string               `json:"formatted,omitempty"`
}

// Server exposes a Visualizer as an MCP server.
type Server struct {
	visualizer Visualizer
	mcpServer  *server.MCPServer
	logger     *slog.Logger
}

// NewServer creates a new MCP Server instance.
func NewServer(v Visualizer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		visualizer: v,
		logger:     logger,
		mcpServer: server.NewMCPServer("arbor-mcp", strings.TrimSpace(arbor.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	baseURL := "http://localhost" + addr
	if !strings.HasPrefix(addr, ":") {
		baseURL = "http://" + addr
	}
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	shapes := make([]string, 0, len(shape.Kinds()))
	for _, k := range shape.Kinds() {
		shapes = append(shapes, string(k))
	}
	kinds := make([]string, 0, len(domain.TraversalKinds()))
	for _, k := range domain.TraversalKinds() {
		kinds = append(kinds, string(k))
	}

	// TOOL: build_tree
	s.mcpServer.AddTool(mcp.NewTool("build_tree",
		mcp.WithDescription("Build a new binary search tree, animating each insertion. Replaces the current tree."),
		mcp.WithString("values", mcp.Required(), mcp.Description("Comma-separated integers, e.g. \"50,30,70\"")),
		mcp.WithString("shape", mcp.Enum(shapes...), mcp.Description("Reorder the values before inserting them")),
		mcp.WithBoolean("wait", mcp.Description("Return only once the animation has finished")),
		mcp.WithOutputSchema[BuildResponse](),
	), mcp.NewStructuredToolHandler(s.handleBuild))

	// TOOL: traverse
	s.mcpServer.AddTool(mcp.NewTool("traverse",
		mcp.WithDescription("Animate a depth-first traversal of the current tree."),
		mcp.WithString("kind", mcp.Required(), mcp.Enum(kinds...), mcp.Description("Traversal order")),
		mcp.WithBoolean("wait", mcp.Description("Return only once the animation has finished")),
		mcp.WithOutputSchema[TraverseResponse](),
	), mcp.NewStructuredToolHandler(s.handleTraverse))

	// TOOL: clear_tree
	s.mcpServer.AddTool(mcp.NewTool("clear_tree",
		mcp.WithDescription("Remove the current tree."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if _, err := s.visualizer.Clear(ctx); err != nil {
			return mcp.NewToolResultErrorFromErr("clear failed", err), nil
		}
		return mcp.NewToolResultText("cleared"), nil
	})

	// TOOL: get_tree
	s.mcpServer.AddTool(mcp.NewTool("get_tree",
		mcp.WithDescription("Get the current tree, its statistics and the last traversal results."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, err := json.Marshal(s.visualizer.Snapshot())
		if err != nil {
			return mcp.NewToolResultErrorFromErr("encode failed", err), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: get_mermaid
	s.mcpServer.AddTool(mcp.NewTool("get_mermaid",
		mcp.WithDescription("Render the current tree as a Mermaid diagram."),
		mcp.WithString("kind", mcp.Enum(kinds...), mcp.Description("Mark the nodes visited by the last traversal of this kind")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		snap := s.visualizer.Snapshot()

		var overlay *graph.GraphOverlay
		if raw := request.GetString("kind", ""); raw != "" {
			kind, err := domain.ParseTraversal(raw)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			overlay = &graph.GraphOverlay{Visited: snap.Results[kind]}
		}
		return mcp.NewToolResultText(graph.GenerateMermaid(snap.Tree, overlay)), nil
	})
}

func (s *Server) handleBuild(ctx context.Context, request mcp.CallToolRequest, args BuildArgs) (BuildResponse, error) {
	values, err := input.Parse(args.Values)
	if err != nil {
		s.logger.Warn("MCP Build: Input rejected", "error", err, "size", len(args.Values))
		return BuildResponse{}, fmt.Errorf("input rejected: %w", err)
	}

	var run *arbor.Run
	if args.Shape != "" {
		kind, err := shape.Parse(args.Shape)
		if err != nil {
			return BuildResponse{}, err
		}
		run, err = s.visualizer.BuildShaped(ctx, kind, values)
		if err != nil {
			return BuildResponse{}, err
		}
	} else {
		run, err = s.visualizer.Build(ctx, values)
		if err != nil {
			return BuildResponse{}, err
		}
	}

	resp := BuildResponse{Order: run.Result()}
	if args.Wait {
		if err := run.Wait(ctx); err != nil {
			return BuildResponse{}, fmt.Errorf("build interrupted: %w", err)
		}
		stats := s.visualizer.Snapshot().Stats
		resp.Stats = &stats
	}
	resp.State = s.visualizer.Snapshot().State
	return resp, nil
}

func (s *Server) handleTraverse(ctx context.Context, request mcp.CallToolRequest, args TraverseArgs) (TraverseResponse, error) {
	kind, err := domain.ParseTraversal(args.Kind)
	if err != nil {
		return TraverseResponse{}, err
	}

	run, err := s.visualizer.Traverse(ctx, kind)
	if err != nil {
		return TraverseResponse{}, err
	}

	resp := TraverseResponse{Kind: kind}
	if args.Wait {
		if err := run.Wait(ctx); err != nil {
			return TraverseResponse{}, fmt.Errorf("traversal interrupted: %w", err)
		}
		resp.Values = run.Result()
		resp.Formatted = domain.FormatResult(resp.Values)
	}
	resp.State = s.visualizer.Snapshot().State
	return resp, nil
}

func (s *Server) registerResources() {
	// EXPOSE: arbor://tree
	s.mcpServer.AddResource(mcp.NewResource(TreeURI, "Current Tree",
		mcp.WithMIMEType("application/json"),
	), s.readTree)
}

func (s *Server) readTree(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(s.visualizer.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("failed to encode tree: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      TreeURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
