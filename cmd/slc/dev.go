package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/Jjop12/renpy/cmd/slc/internal/config"
	"github.com/Jjop12/renpy/internal/cache"
	"github.com/Jjop12/renpy/pkg/live"
	"github.com/Jjop12/renpy/pkg/renderer/html"
	"github.com/Jjop12/renpy/pkg/screen"
	"github.com/Jjop12/renpy/pkg/script"
	"github.com/Jjop12/renpy/pkg/sl"
	"github.com/Jjop12/renpy/pkg/sldoc"
	"github.com/Jjop12/renpy/pkg/styling"
	"github.com/Jjop12/renpy/pkg/vdom"
	"github.com/Jjop12/renpy/pkg/widgets"
)

type devServer struct {
	logger      *slog.Logger
	file        string
	vars        []string
	renderCache *cache.Cache

	mu  sync.RWMutex
	def *screen.Definition
}

func newDevCommand() *cobra.Command {
	var port int
	var host string
	var vars []string

	cmd := &cobra.Command{
		Use:   "dev <file>",
		Short: "Serve a screen document with live reload",
		Long: `Starts a development server that renders the document, watches it for
changes, and pushes updates to connected previews over a websocket.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(".")
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.Dev.Port = port
			}
			if host != "" {
				cfg.Dev.Host = host
			}
			return runDev(cfg, resolveDocument(cfg, args[0]), vars)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to serve on (overrides slc.yaml)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind (overrides slc.yaml)")
	cmd.Flags().StringArrayVar(&vars, "var", nil, "Initial scope variable as name=expression (repeatable)")

	return cmd
}

// resolveDocument falls back to the configured screens directory when the
// path does not exist as given.
func resolveDocument(cfg *config.Config, file string) string {
	if _, err := os.Stat(file); err == nil {
		return file
	}
	if filepath.IsAbs(file) {
		return file
	}
	candidate := filepath.Join(cfg.ScreensDir, file)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return file
}

func runDev(cfg *config.Config, file string, vars []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	server := &devServer{
		logger:      logger,
		file:        file,
		vars:        vars,
		renderCache: cache.New(64),
	}

	if err := server.reload(); err != nil {
		return fmt.Errorf("initial load failed: %w", err)
	}

	liveServer := live.NewServer(logger, server.newSession)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(file)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	go server.watchFiles(watcher, liveServer)

	mux := http.NewServeMux()
	mux.HandleFunc("/live", liveServer.HandleWebSocket)
	mux.HandleFunc("/", server.servePreview)

	addr := fmt.Sprintf("%s:%d", cfg.Dev.Host, cfg.Dev.Port)
	logger.Info("dev server running", "addr", "http://"+addr, "file", file)

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("shutting down dev server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}()

	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// reload re-reads the document and swaps in the new definition.
func (s *devServer) reload() error {
	def, err := sldoc.NewLoader(script.New()).LoadFile(s.file)
	if err != nil {
		return err
	}
	if err := def.Prepare(); err != nil {
		return err
	}

	s.mu.Lock()
	s.def = def
	s.mu.Unlock()
	return nil
}

// newSession builds the instance and scope for a live preview connection.
func (s *devServer) newSession() (*screen.Instance, sl.Scope, error) {
	s.mu.RLock()
	def := s.def
	s.mu.RUnlock()

	scope, err := parseVars(script.New(), s.vars)
	if err != nil {
		return nil, nil, err
	}

	styles := styling.NewRegistry()
	widgets.RegisterBaseStyles(styles)
	return screen.NewInstance(def, styles), scope, nil
}

func (s *devServer) watchFiles(watcher *fsnotify.Watcher, liveServer *live.Server) {
	debounce := time.NewTimer(0)
	<-debounce.C

	var pending bool
	var mu sync.Mutex

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !s.isRelevantFile(event.Name) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			mu.Lock()
			pending = true
			mu.Unlock()
			debounce.Reset(100 * time.Millisecond)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("watcher error", "err", err)

		case <-debounce.C:
			mu.Lock()
			changed := pending
			pending = false
			mu.Unlock()

			if !changed {
				continue
			}

			s.logger.Info("document changed, reloading", "file", s.file)
			if err := s.reload(); err != nil {
				s.logger.Error("reload failed", "err", err)
				liveServer.Broadcast(live.Message{Type: "error", Error: err.Error()})
				continue
			}
			liveServer.Broadcast(live.Message{Type: "reload"})
		}
	}
}

func (s *devServer) isRelevantFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// servePreview renders the document once and serves it inside a page that
// connects to the live websocket. Rendered HTML is cached by document
// content so unchanged files skip re-execution.
func (s *devServer) servePreview(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	body, err := s.renderCurrent()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	fmt.Fprintf(w, previewPage, body)
}

func (s *devServer) renderCurrent() (string, error) {
	data, err := os.ReadFile(s.file)
	if err != nil {
		return "", err
	}

	key := cache.Key(data, []byte(strings.Join(s.vars, "\x00")))
	if cached, ok := s.renderCache.Get(key); ok {
		return string(cached), nil
	}

	instance, scope, err := s.newSession()
	if err != nil {
		return "", err
	}
	elements, err := instance.Render(scope)
	if err != nil {
		return "", err
	}

	root := vdom.NewWidget("screen", nil)
	for _, el := range elements {
		node, ok := el.(*vdom.Node)
		if !ok {
			return "", fmt.Errorf("element %T is not a widget tree node", el)
		}
		root.Add(node)
	}

	out, err := html.RenderToString(root)
	if err != nil {
		return "", err
	}
	s.renderCache.Put(key, []byte(out))
	return out, nil
}

const previewPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>slc preview</title>
<style>
body { font-family: sans-serif; margin: 1rem; }
[class^="sl-"] { border: 1px dashed #ccc; padding: 4px; margin: 2px; }
.sl-vbox { display: flex; flex-direction: column; }
.sl-hbox { display: flex; flex-direction: row; }
</style>
</head>
<body>
<div id="preview">%s</div>
<script>
(function () {
	var ws = new WebSocket("ws://" + location.host + "/live");
	ws.onmessage = function (ev) {
		var msg = JSON.parse(ev.data);
		if (msg.type === "render") {
			document.getElementById("preview").innerHTML = msg.html;
		} else if (msg.type === "reload") {
			location.reload();
		} else if (msg.type === "error") {
			console.error("slc:", msg.error);
		}
	};
})();
</script>
</body>
</html>
`
