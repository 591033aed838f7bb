package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	titlesCmd := &cobra.Command{Use: "titles", Short: "Title analysis operations"}

	var description string
	analyzeCmd := &cobra.Command{
		Use:   "analyze TITLE",
		Short: "Classify an event title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{"title": args[0]}
			if description != "" {
				payload["description"] = description
			}
			url := fmt.Sprintf("%s/api/titles/analyze", apiFlag)
			data, err := doPostJSON(url, payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	analyzeCmd.Flags().StringVarP(&description, "description", "d", "", "Event description")
	titlesCmd.AddCommand(analyzeCmd)

	var eventType string
	chipsCmd := &cobra.Command{
		Use:   "chips [QUERY]",
		Short: "Search topic chips",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := fmt.Sprintf("%s/api/chips?eventType=%s", apiFlag, eventType)
			if len(args) == 1 {
				url += "&q=" + args[0]
			}
			data, err := doGet(url)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	chipsCmd.Flags().StringVarP(&eventType, "type", "t", "", "Restrict to event type")
	titlesCmd.AddCommand(chipsCmd)

	rootCmd.AddCommand(titlesCmd)
}
