package cli

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
)

// previewPage embeds the visualization the same way a notebook would: an
// iframe with a fixed height.
var previewPage = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html>
<head><title>graphport preview</title>
<style>body { margin: 0; } iframe { border: 1px solid #ccc; width: 100%; }</style>
</head>
<body>
<iframe src="{{.URL}}" height="{{.Height}}" allowfullscreen="true"></iframe>
</body>
</html>
`))

func newPreviewCmd() *cobra.Command {
	var (
		addr   string
		height int
	)

	cmd := &cobra.Command{
		Use:   "preview <url>",
		Short: "Serve an uploaded visualization in a local iframe page",
		Long: `Preview serves a local HTML page embedding the given visualization URL in
an iframe, mirroring how the graph appears when embedded in a notebook.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd.Context(), args[0], addr, height)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8377", "address to listen on")
	cmd.Flags().IntVar(&height, "height", 500, "iframe height in pixels")
	return cmd
}

func runPreview(ctx context.Context, vizURL, addr string, height int) error {
	logger := loggerFromContext(ctx)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = previewPage.Execute(w, struct {
			URL    string
			Height int
		}{vizURL, height})
	})

	srv := &http.Server{Addr: addr, Handler: r}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	printInfo("previewing at %s", "http://"+addr)
	printLink(vizURL)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Debug("shutdown", "err", err)
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("preview server: %w", err)
	}
}
