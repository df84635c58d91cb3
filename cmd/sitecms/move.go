package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/iota-uz/sitecms/pkg/ordering/client"
)

type moveOptions struct {
	BaseURL string
	Session string
	Path    string
	ID      string
	Onto    string
	Timeout time.Duration
}

func newMoveCmd() *cobra.Command {
	var opts moveOptions

	cmd := &cobra.Command{
		Use:   "move --path jobs --id <uuid> --onto <uuid>",
		Short: "Drag one record onto another through the admin API and print the result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(opts.Path) == "" {
				return errors.New("--path is required")
			}
			if opts.Session == "" {
				opts.Session = os.Getenv("SITECMS_SESSION")
			}
			id, err := uuid.Parse(opts.ID)
			if err != nil {
				return fmt.Errorf("--id: %w", err)
			}
			onto, err := uuid.Parse(opts.Onto)
			if err != nil {
				return fmt.Errorf("--onto: %w", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
			defer cancel()

			remote, err := client.NewRemoteCollection[client.Item](
				&http.Client{Timeout: opts.Timeout}, opts.BaseURL, opts.Path, opts.Session,
			)
			if err != nil {
				return err
			}
			list := remote.List(client.WithNotifier[client.Item](func(err error) {
				fmt.Fprintf(cmd.ErrOrStderr(), "reorder rejected, list reloaded: %v\n", err)
			}))
			if err := list.Load(ctx); err != nil {
				return err
			}
			if err := list.BeginDrag(id); err != nil {
				return err
			}
			pending, err := list.Drop(ctx, onto)
			if err != nil {
				return err
			}
			if pending != nil {
				if _, err := pending.Wait(ctx); err != nil {
					printItems(cmd, list.Items())
					return err
				}
			}
			printItems(cmd, list.Items())
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.BaseURL, "base-url", "http://localhost:3200", "server base URL")
	cmd.Flags().StringVar(&opts.Session, "session", "", "admin session token (default $SITECMS_SESSION)")
	cmd.Flags().StringVar(&opts.Path, "path", "", `collection path below /api/admin, e.g. "jobs" or "industries/<id>/solutions"`)
	cmd.Flags().StringVar(&opts.ID, "id", "", "record to move")
	cmd.Flags().StringVar(&opts.Onto, "onto", "", "record whose position it takes")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "overall timeout")
	return cmd
}

func printItems(cmd *cobra.Command, items []client.Item) {
	for i, item := range items {
		marker := " "
		if !item.IsActive {
			marker = "-"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%3d %s %s  %s\n", i, marker, item.ID, item.Label)
	}
}
