package command

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cayleygraph/ontoeval/clog"
	"github.com/cayleygraph/ontoeval/eval"
	"github.com/cayleygraph/ontoeval/internal/config"
	chttp "github.com/cayleygraph/ontoeval/internal/http"
	"github.com/cayleygraph/ontoeval/internal/store"
)

func NewHttpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "http",
		Short: "Serve the evaluation API on the given host and port.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(cmd, map[string]string{
				config.KeyHost:         "host",
				config.KeyTimeout:      "timeout",
				config.KeyAllowPaths:   "allow_paths",
				config.KeyMaxBody:      "max_body",
				config.KeyCacheSize:    "cache_size",
				config.KeyMode:         flagMode,
				config.KeyFormat:       flagFormat,
				config.KeyStoreBackend: "store",
				config.KeyStorePath:    "store_path",
			}); err != nil {
				return err
			}
			cfg, err := config.FromViper(viper.GetViper())
			if err != nil {
				return err
			}
			st, err := cfg.OpenStore()
			if err != nil {
				return err
			}
			if st != nil {
				defer st.Close()
			}

			host := cfg.ListenHost
			phost := host
			if h, port, err := net.SplitHostPort(host); err == nil && h == "" {
				phost = net.JoinHostPort("localhost", port)
			}
			srv := &http.Server{
				Addr:              host,
				Handler:           chttp.NewRouter(cfg, st),
				ReadHeaderTimeout: 10 * time.Second,
			}
			clog.Infof("listening on %s, evaluate at http://%s/api/v1/evaluate", host, phost)
			return srv.ListenAndServe()
		},
	}
	cmd.Flags().String("host", "127.0.0.1:64211", "host:port to listen on")
	cmd.Flags().DurationP("timeout", "t", 30*time.Second, "elapsed time until an individual evaluation times out")
	cmd.Flags().Bool("allow_paths", false, "allow requests to name files on the server")
	cmd.Flags().Int64("max_body", 32<<20, "maximum request body size in bytes")
	cmd.Flags().Int("cache_size", 0, "number of parsed uploads to keep (0 disables the cache)")
	cmd.Flags().String("store", "", "evaluation store backend ("+strings.Join(store.Backends(), ", ")+"); empty keeps no evaluations")
	cmd.Flags().String("store_path", "", "path to the evaluation store of persistent backends")
	cmd.Flags().String(flagMode, eval.ModeElements.String(), `default source of the headline ratios ("elements" or "triples")`)
	cmd.Flags().String(flagFormat, "", "format used when it cannot be detected ("+formatNames()+")")
	return cmd
}
