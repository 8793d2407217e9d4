// Package serve handles the HTTP server command.
package serve

import (
	"net/http"

	"rkaneko/payrecon/cmd/root"
	"rkaneko/payrecon/internal/server"

	"github.com/spf13/cobra"
)

var addrFlag string

// Cmd represents the serve command.
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the import/reconcile/export API over HTTP",
	Run:   serveFunc,
}

func init() {
	Cmd.Flags().StringVarP(&addrFlag, "addr", "a", "", "Listen address (default from config)")
}

func serveFunc(cmd *cobra.Command, args []string) {
	addr := addrFlag
	if addr == "" {
		addr = root.Cfg.Server.Addr
	}

	st := root.OpenStore()
	defer func() { _ = st.Close() }()

	srv := server.New(st, root.NewImporter(st))
	root.Log.Infof("Listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		root.Log.Fatalf("Server failed: %v", err)
	}
}
