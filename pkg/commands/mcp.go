package commands

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/notd/pkg/commands/options"
	"tableflip.dev/notd/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	mo := &options.MCPOptions{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server that lets an assistant list, add, edit, delete and
search diary entries, and load or save diary files. Saves made through MCP
go to the downloads directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}

			path := strings.TrimSpace(mo.HTTPPath)
			if path == "" {
				path = "/mcp"
			}
			if !strings.HasPrefix(path, "/") {
				path = "/" + path
			}

			runner := mcp.Runner{
				Store:            s.diary,
				Saver:            s.download(),
				Name:             "notd",
				Version:          version,
				HTTPEndpointPath: path,
				HTTPServerCert:   strings.TrimSpace(mo.HTTPTLSCert),
				HTTPServerKey:    strings.TrimSpace(mo.HTTPTLSKey),
			}

			switch strings.ToLower(strings.TrimSpace(mo.Transport)) {
			case "", string(mcp.TransportStdio):
				runner.Transport = mcp.TransportStdio
			case string(mcp.TransportHTTP):
				host := strings.TrimSpace(mo.HTTPHost)
				if host == "" {
					host = "127.0.0.1"
				}
				port := mo.HTTPPort
				if port < 0 || port > 65535 {
					return fmt.Errorf("invalid http-port %d", port)
				}

				addr := net.JoinHostPort(host, strconv.Itoa(port))
				runner.Transport = mcp.TransportHTTP
				runner.HTTPListenAddr = addr
				runner.OnHTTPListening = func(a net.Addr) {
					tls := runner.HTTPServerCert != "" && runner.HTTPServerKey != ""
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "MCP HTTP server listening on %s\n", mcp.ListenURL(a, host, path, tls))
				}
			default:
				return fmt.Errorf("unsupported transport %q (expected stdio or http)", mo.Transport)
			}

			return runner.Do(cmd.Context())
		},
	}

	options.AddMCPArgs(cmd, mo)

	topLevel.AddCommand(cmd)
}
