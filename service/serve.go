package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mysite/app/mailer"
	"mysite/app/routes"

	"github.com/spf13/cobra"
)

func (c *cli) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the blog web server",
		Long: `Run the blog web server on MYSITE_ADDR until SIGINT or SIGTERM,
then drain in-flight requests for up to MYSITE_SHUTDOWN_TIMEOUT.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			m, err := mailer.New(c.cfg.MailBackend, mailer.SMTPOptions{
				Host:     c.cfg.SMTPHost,
				Port:     c.cfg.SMTPPort,
				Username: c.cfg.SMTPUser,
				Password: c.cfg.SMTPPassword,
			}, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			return c.withStore(func(store clearable) error {
				router, err := routes.SetupRoutes(routes.NewServices(store, m, c.cfg.MailFrom))
				if err != nil {
					return err
				}
				ln, err := net.Listen("tcp", c.cfg.Addr)
				if err != nil {
					return fmt.Errorf("listen on %s: %w", c.cfg.Addr, err)
				}
				srv := &http.Server{
					Handler:      router,
					ReadTimeout:  c.cfg.ReadTimeout,
					WriteTimeout: c.cfg.WriteTimeout,
				}
				log.Printf("Starting blog on %s (store=%s, mail=%s)", ln.Addr(), c.cfg.StoreDriver, c.cfg.MailBackend)
				return runServer(ctx, srv, ln, c.cfg.ShutdownTimeout)
			})
		},
	}
}

// runServer serves on ln until ctx is done, then shuts srv down gracefully.
func runServer(ctx context.Context, srv *http.Server, ln net.Listener, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Println("Server stopped")
	return nil
}
