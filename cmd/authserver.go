package cmd

import (
	"crypto/rand"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/stocklearn/internal/authserver"
	"github.com/abhisek/stocklearn/internal/logging"
)

var authServerCmd = &cobra.Command{
	Use:   "authserver",
	Short: "Run a local development auth server",
	Long: `Serve POST /auth/signup and POST /auth/login backed by the local database.

Point auth.base_url (or STOCKLEARN_AUTH_BASE_URL) at this server to use the
Profile tab without the hosted service.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.Server.Addr
		}

		log := logging.NewWithWriter(os.Stderr, cfg.Log.Level)

		secret := cfg.Server.Secret
		if secret == "" {
			secret = rand.Text()
			log.Warn("no server.secret configured; tokens will not survive a restart")
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		srv, err := authserver.New(s.UserRepo(), authserver.Options{
			Secret:   secret,
			TokenTTL: cfg.Server.TokenTTL,
			Logger:   log,
		})
		if err != nil {
			return fmt.Errorf("auth server: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return srv.ListenAndServe(ctx, addr)
	},
}

func init() {
	authServerCmd.Flags().String("addr", "", "Listen address (default server.addr)")
}
