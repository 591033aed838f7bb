package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	momentsCmd := &cobra.Command{Use: "moments", Short: "Moment operations"}

	// create
	var description string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a moment and match thoughts against it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if description == "" {
				return fmt.Errorf("--description required")
			}
			url := fmt.Sprintf("%s/api/moments", apiFlag)
			data, err := doPostJSON(url, map[string]interface{}{"description": description})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&description, "description", "d", "", "Moment description (required)")
	_ = createCmd.MarkFlagRequired("description")
	momentsCmd.AddCommand(createCmd)

	// from-event
	var title, eventDescription string
	fromEventCmd := &cobra.Command{
		Use:   "from-event",
		Short: "Create a moment from a calendar event title",
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" {
				return fmt.Errorf("--title required")
			}
			payload := map[string]interface{}{"title": title}
			if eventDescription != "" {
				payload["description"] = eventDescription
			}
			url := fmt.Sprintf("%s/api/moments/from-event", apiFlag)
			data, err := doPostJSON(url, payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	fromEventCmd.Flags().StringVarP(&title, "title", "t", "", "Calendar event title (required)")
	fromEventCmd.Flags().StringVarP(&eventDescription, "description", "d", "", "Event description")
	_ = fromEventCmd.MarkFlagRequired("title")
	momentsCmd.AddCommand(fromEventCmd)

	// enrich
	var chips []string
	var freeText string
	enrichCmd := &cobra.Command{
		Use:   "enrich MOMENT_ID",
		Short: "Add context to a moment and re-match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{"chips": chips, "freeText": freeText}
			url := fmt.Sprintf("%s/api/moments/%s/enrich", apiFlag, args[0])
			data, err := doPostJSON(url, payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	enrichCmd.Flags().StringSliceVarP(&chips, "chip", "c", nil, "Topic chip (repeatable)")
	enrichCmd.Flags().StringVarP(&freeText, "text", "x", "", "Free-text context (max 200 chars)")
	momentsCmd.AddCommand(enrichCmd)

	// get
	getCmd := &cobra.Command{
		Use:   "get MOMENT_ID",
		Short: "Get a moment by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := fmt.Sprintf("%s/api/moments/%s", apiFlag, args[0])
			data, err := doGet(url)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	momentsCmd.AddCommand(getCmd)

	// helpful / not-helpful
	for _, def := range []struct {
		use, short, path string
	}{
		{"helpful MOMENT_ID THOUGHT_ID", "Mark a matched thought helpful", "helpful"},
		{"not-helpful MOMENT_ID THOUGHT_ID", "Mark a matched thought not helpful", "not-helpful"},
	} {
		path := def.path
		cmd := &cobra.Command{
			Use:   def.use,
			Short: def.short,
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				url := fmt.Sprintf("%s/api/moments/learn/%s", apiFlag, path)
				data, err := doPostJSON(url, map[string]interface{}{"momentId": args[0], "thoughtId": args[1]})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(os.Stdout, string(data))
				return nil
			},
		}
		momentsCmd.AddCommand(cmd)
	}

	rootCmd.AddCommand(momentsCmd)
}
