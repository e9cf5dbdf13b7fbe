package options

import (
	"github.com/spf13/cobra"
)

// MCPOptions
type MCPOptions struct {
	Transport   string
	HTTPHost    string
	HTTPPort    int
	HTTPPath    string
	HTTPTLSCert string
	HTTPTLSKey  string
}

func AddMCPArgs(cmd *cobra.Command, o *MCPOptions) {
	cmd.Flags().StringVar(&o.Transport, "transport", "stdio", "transport to use: stdio or http")
	cmd.Flags().StringVar(&o.HTTPHost, "http-host", "127.0.0.1", "host/interface for HTTP transport")
	cmd.Flags().IntVar(&o.HTTPPort, "http-port", 8080, "port for HTTP transport (use 0 for random)")
	cmd.Flags().StringVar(&o.HTTPPath, "http-path", "/mcp", "HTTP endpoint path")
	cmd.Flags().StringVar(&o.HTTPTLSCert, "http-tls-cert", "", "TLS certificate file for HTTPS")
	cmd.Flags().StringVar(&o.HTTPTLSKey, "http-tls-key", "", "TLS private key file for HTTPS")
}
