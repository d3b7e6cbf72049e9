package main

import (
	"fmt"
	"log"
	"os"

	"github.com/avolkov/musiccatalog/config"
	"github.com/avolkov/musiccatalog/handlers"
	"github.com/avolkov/musiccatalog/seed"
	"github.com/avolkov/musiccatalog/spotify"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "musiccatalog",
		Short: "Music catalog service",
	}

	root.AddCommand(serveCmd(), seedCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			db, err := config.Open(cfg)
			if err != nil {
				return err
			}

			sp := spotify.New(cfg.SpotifyID, cfg.SpotifySecret)
			server := handlers.NewServer(db, cfg.MediaDir, sp)

			log.Printf("listening on %s", cfg.Addr)
			return server.Router().Run(cfg.Addr)
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with sample catalog data",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			db, err := config.Open(cfg)
			if err != nil {
				return err
			}

			if err := seed.Run(db); err != nil {
				return err
			}
			log.Println("sample data loaded")
			return nil
		},
	}
}
