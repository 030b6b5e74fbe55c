package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/five82/matchday/internal/app"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override matchday config path (optional)")
	once := flag.Bool("once", false, "print the event list and exit")
	search := flag.String("search", "", "only list events whose name contains this text")
	favoritesOnly := flag.Bool("favorites", false, "only list favorited events")
	favs := flag.String("fav", "", "comma separated event ids to mark as favorites")
	debug := flag.Bool("debug", false, "write debug logs to the configured log file")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath:    *configPath,
		Debug:         *debug,
		Version:       version,
		Once:          *once || !term.IsTerminal(int(os.Stdout.Fd())),
		Out:           os.Stdout,
		Search:        *search,
		FavoritesOnly: *favoritesOnly,
	}
	if *favs != "" {
		opts.Favorites = strings.Split(*favs, ",")
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "matchday: %v\n", err)
		return 1
	}
	return 0
}
