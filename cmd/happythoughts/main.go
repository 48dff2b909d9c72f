package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/happythoughts/happythoughts/internal/client"
	"github.com/happythoughts/happythoughts/internal/config"
	"github.com/happythoughts/happythoughts/internal/store"
)

const version = "happythoughts v0.1.0"

func main() {
	if len(os.Args) < 2 {
		runServer()
		return
	}

	cmd := os.Args[1]

	if cmd == "-h" || cmd == "--help" || cmd == "help" {
		printUsage()
		return
	}

	if cmd == "-v" || cmd == "--version" || cmd == "version" {
		fmt.Println(version)
		return
	}

	if strings.HasPrefix(cmd, "-") {
		runServer()
		return
	}

	args := os.Args[2:]

	switch cmd {
	case "server", "serve":
		runServer()
	case "list", "read":
		cmdList(args)
	case "post":
		cmdPost(args)
	case "like":
		cmdLike(args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`happythoughts - A tiny feed of happy thoughts

Usage: happythoughts <command> [options]

Client Commands:
  list                Show the 20 most recent thoughts
  post                Post a new thought
  like                Like a thought

Server:
  server              Start the Happy Thoughts API (default if no command)

Examples:
  happythoughts post --text "The sun came out today!"
  happythoughts like --id 65f1c0ffee0000000000abcd
  happythoughts list --url https://thoughts.example.com

Environment Variables (client):
  HAPPYTHOUGHTS_URL                 Server URL (default: http://localhost:8080)

Environment Variables (server):
  PORT                              Listen port (default: 8080)
  HAPPYTHOUGHTS_ADDR                Listen address, overrides PORT
  HAPPYTHOUGHTS_STORE               mongo, sqlite or postgres (default: mongo)
  MONGO_URL                         MongoDB connection string
  HAPPYTHOUGHTS_DB                  SQLite database path (default: happythoughts.db)
  DATABASE_URL                      PostgreSQL connection string
  HAPPYTHOUGHTS_FEED_LIMIT          Thoughts per feed, 1 to 20 (default: 20)
  HAPPYTHOUGHTS_CONNECT_TIMEOUT     Store connect timeout (default: 10s)
  HAPPYTHOUGHTS_LOG_LEVEL           Log level (default: info)
  HAPPYTHOUGHTS_LOG_FORMAT          json or text (default: json)`)
}

// ============================================================================
// SERVER
// ============================================================================

func runServer() {
	container, err := BuildContainer(config.Load)
	if err != nil {
		logrus.Fatalf("failed to build container: %v", err)
	}

	err = container.Invoke(func(httpServer *http.Server, st store.Store, logger *logrus.Logger) error {
		defer closeStore(st, logger)

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(stop)

		return serve(httpServer, logger, stop)
	})
	if err != nil {
		logrus.Fatalf("server error: %v", err)
	}
}

// serve runs httpServer until stop fires or the listener fails. A listener
// failure is returned so the caller's deferred cleanup still runs.
func serve(httpServer *http.Server, logger logrus.FieldLogger, stop <-chan os.Signal) error {
	errc := make(chan error, 1)
	go func() {
		logger.Infof("happythoughts listening on %s", httpServer.Addr)
		errc <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-stop:
	}

	logger.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.WithError(err).Warn("shutdown incomplete")
	}
	return nil
}

func closeStore(st store.Store, logger logrus.FieldLogger) {
	if err := st.Close(); err != nil {
		logger.WithError(err).Warn("store close")
		return
	}
	logger.Info("store closed")
}

// ============================================================================
// CLIENT COMMANDS
// ============================================================================

func defaultURL() string {
	if u := os.Getenv("HAPPYTHOUGHTS_URL"); u != "" {
		return u
	}
	return "http://localhost:8080"
}

func newClient(fs *flag.FlagSet, args []string) *client.Client {
	fs.Parse(args)
	return client.New(strings.TrimSuffix(fs.Lookup("url").Value.String(), "/"))
}

func cmdList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	fs.String("url", defaultURL(), "Happy Thoughts server URL")
	c := newClient(fs, args)

	thoughts, err := c.ListThoughts(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n💭 Happy Thoughts (%d)\n\n", len(thoughts))
	for i, t := range thoughts {
		fmt.Printf("%d. %s\n", i+1, t.Text)
		fmt.Printf("   ♥ %d | %s | %s\n\n", t.Likes, t.CreatedAt.Local().Format(time.DateTime), t.ID)
	}
}

func cmdPost(args []string) {
	fs := flag.NewFlagSet("post", flag.ExitOnError)
	fs.String("url", defaultURL(), "Happy Thoughts server URL")
	text := fs.String("text", "", "Thought text, 6 to 140 characters (required)")
	c := newClient(fs, args)

	if *text == "" {
		fmt.Fprintln(os.Stderr, "Error: --text is required")
		fmt.Fprintln(os.Stderr, "Usage: happythoughts post --text <thought> [--url <server-url>]")
		os.Exit(1)
	}

	thought, err := c.CreateThought(context.Background(), *text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Posted thought %s\n", thought.ID)
	fmt.Printf("  %s\n", thought.Text)
}

func cmdLike(args []string) {
	fs := flag.NewFlagSet("like", flag.ExitOnError)
	fs.String("url", defaultURL(), "Happy Thoughts server URL")
	id := fs.String("id", "", "Thought id (required)")
	c := newClient(fs, args)

	if *id == "" {
		fmt.Fprintln(os.Stderr, "Error: --id is required")
		fmt.Fprintln(os.Stderr, "Usage: happythoughts like --id <thought-id> [--url <server-url>]")
		os.Exit(1)
	}

	if err := c.LikeThought(context.Background(), *id); err != nil {
		if errors.Is(err, client.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "Error: thought %s not found\n", *id)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("♥ Liked thought %s\n", *id)
}
