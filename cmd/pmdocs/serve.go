package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	pmdocsmcp "github.com/gorewood/pmdocs/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run pmdocs as a Model Context Protocol (MCP) server over stdio.

This exposes pmdocs operations as MCP tools that any MCP-capable agent
environment can use. Configuration is resolved once at startup.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "pmdocs": {
        "command": "pmdocs",
        "args": ["serve"]
      }
    }
  }

Available tools: export, sync, lookup`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			server := pmdocsmcp.NewServer(buildVersion(), a)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
