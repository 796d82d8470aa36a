package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joshua-takyi/eventhive/internal/booking"
	"github.com/joshua-takyi/eventhive/internal/client"
	"github.com/joshua-takyi/eventhive/internal/models"
	"github.com/joshua-takyi/eventhive/internal/search"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var server string
	var asJSON bool

	root := &cobra.Command{
		Use:           "eventctl",
		Short:         "Manage and browse EventHive events from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&server, "server", envOr("EVENTHIVE_URL", "http://localhost:8080"), "API base URL")
	root.PersistentFlags().BoolVar(&asJSON, "json", false, "print raw JSON")
	root.SetOut(out)

	api := func() *client.Client { return client.New(server) }
	printer := func(cmd *cobra.Command, events []*models.Event) error {
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), events)
		}
		printEvents(cmd.OutOrStdout(), events)
		return nil
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List every event",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				b := client.NewBrowser(api())
				if err := b.Load(cmd.Context()); err != nil {
					return err
				}
				return printer(cmd, b.All())
			},
		},
		&cobra.Command{
			Use:   "search QUERY",
			Short: "Search titles, descriptions, dates and venues",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				b := client.NewBrowser(api())
				if err := b.Load(cmd.Context()); err != nil {
					return err
				}
				return printer(cmd, b.Search(args[0]))
			},
		},
		&cobra.Command{
			Use:   "delete ID",
			Short: "Delete an event",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := api().DeleteEvent(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Event deleted")
				return nil
			},
		},
		newCreateCmd(api),
		newBookCmd(api),
		&cobra.Command{
			Use:   "suggest-titles THEME",
			Short: "Ask the model for event titles",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				titles, err := api().SuggestTitles(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				for _, t := range titles {
					fmt.Fprintln(cmd.OutOrStdout(), t)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "enhance-description IDEA",
			Short: "Ask the model for a five sentence description",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				desc, err := api().EnhanceDescription(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), desc)
				return nil
			},
		},
	)
	return root
}

func newCreateCmd(api func() *client.Client) *cobra.Command {
	var form client.EventForm
	var imagePath, userID string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Upload an image and create an event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if imagePath != "" {
				data, err := os.ReadFile(imagePath)
				if err != nil {
					return fmt.Errorf("reading image: %w", err)
				}
				form.Image = &client.ImageFile{Name: filepath.Base(imagePath), Data: data}
			}
			event, err := api().CreateEvent(cmd.Context(), form, userID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Event created successfully: %s\n", event.ID)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&form.Title, "title", "", "event title")
	f.StringVar(&form.Venue, "venue", "", "venue")
	f.StringVar(&form.StartDate, "start-date", "", "start date (YYYY-MM-DD)")
	f.StringVar(&form.EndDate, "end-date", "", "end date (YYYY-MM-DD)")
	f.StringVar(&form.StartTime, "start-time", "", "start time (HH:MM)")
	f.StringVar(&form.EndTime, "end-time", "", "end time (HH:MM)")
	f.StringVar(&form.CoverCost, "cover-cost", "", "cover cost")
	f.StringVar(&form.Description, "description", "", "description")
	f.StringVar(&imagePath, "image", "", "path to the cover image")
	f.StringVar(&userID, "user", os.Getenv("EVENTHIVE_USER"), "owner user id")
	return cmd
}

func newBookCmd(api func() *client.Client) *cobra.Command {
	var form booking.Form

	cmd := &cobra.Command{
		Use:   "book EVENT_ID",
		Short: "Book a place at an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form.EventID = args[0]
			res, err := api().Book(cmd.Context(), form)
			var fe booking.FieldErrors
			if errors.As(err, &fe) {
				for field, msg := range fe {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", field, msg)
				}
				return errors.New("booking form is invalid")
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Booking successful! Reference %s, paid %.2f %s\n", res.Reference, res.Amount, res.Currency)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&form.Name, "name", "", "attendee name")
	f.StringVar(&form.Email, "email", "", "attendee email")
	f.StringVar(&form.Phone, "phone", "", "10-digit phone number")
	return cmd
}

func printEvents(w io.Writer, events []*models.Event) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events found")
		return
	}
	for _, e := range events {
		fmt.Fprintf(w, "%s  %s  @ %s  %s %s-%s  %.2f\n",
			e.ID, e.EventTitle, e.EventVenue, search.FormatStartDate(e.EventStartDate), e.EventStartTime, e.EventEndTime, e.EventCoverCost)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
