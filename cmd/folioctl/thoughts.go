package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	thoughtsCmd := &cobra.Command{Use: "thoughts", Short: "Thought operations"}

	var content, contextID string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Capture a thought",
		RunE: func(cmd *cobra.Command, args []string) error {
			if content == "" {
				return fmt.Errorf("--content required")
			}
			payload := map[string]interface{}{"content": content}
			if contextID != "" {
				payload["contextId"] = contextID
			}
			url := fmt.Sprintf("%s/api/thoughts", apiFlag)
			data, err := doPostJSON(url, payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&content, "content", "c", "", "Thought content (required)")
	createCmd.Flags().StringVar(&contextID, "context", "", "Context ID to tag with")
	_ = createCmd.MarkFlagRequired("content")
	thoughtsCmd.AddCommand(createCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List thoughts",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/thoughts", apiFlag))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	thoughtsCmd.AddCommand(listCmd)

	applyCmd := &cobra.Command{
		Use:   "apply THOUGHT_ID",
		Short: "Record that a thought was applied",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := fmt.Sprintf("%s/api/thoughts/%s/apply", apiFlag, args[0])
			data, err := doPostJSON(url, map[string]interface{}{})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	thoughtsCmd.AddCommand(applyCmd)

	discoverCmd := &cobra.Command{
		Use:   "discover",
		Short: "Resurface the least recently applied thought",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/thoughts/discover", apiFlag))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	thoughtsCmd.AddCommand(discoverCmd)

	activeCmd := &cobra.Command{
		Use:   "active",
		Short: "Show the active list",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/active-list", apiFlag))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	thoughtsCmd.AddCommand(activeCmd)

	rootCmd.AddCommand(thoughtsCmd)
}
