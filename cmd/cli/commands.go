package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(createMatchCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(pointCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(nextSetCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(sayCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List all matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches")
	},
}

var createMatchCmd = &cobra.Command{
	Use:   "create-match <team-a> <team-b>",
	Short: "Create a new match between two teams",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := fmt.Sprintf(`{"team_a":%q,"team_b":%q}`, args[0], args[1])
		return performPostRequest("/matches", body)
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score <match-id>",
	Short: "Show the current score of a match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches/" + args[0] + "/score")
	},
}

var pointCmd = &cobra.Command{
	Use:   "point <match-id> <A|B>",
	Short: "Record a point for a team",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := fmt.Sprintf(`{"team":%q}`, args[1])
		return performPostRequest("/matches/"+args[0]+"/point", body)
	},
}

var undoCmd = &cobra.Command{
	Use:   "undo <match-id>",
	Short: "Undo the last point of a match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/matches/"+args[0]+"/undo", "")
	},
}

var nextSetCmd = &cobra.Command{
	Use:   "next-set <match-id>",
	Short: "Start the next set of a match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/matches/"+args[0]+"/next-set", "")
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset <match-id>",
	Short: "Reset a match, wiping its sets and event log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/matches/"+args[0]+"/reset", "")
	},
}

var sayCmd = &cobra.Command{
	Use:   "say <match-id> <transcript>",
	Short: "Send a voice transcript to a match",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := fmt.Sprintf(`{"transcript":%q}`, args[1])
		return performPostRequest("/matches/"+args[0]+"/voice", body)
	},
}

var reportCmd = &cobra.Command{
	Use:   "report <match-id>",
	Short: "Print the match report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches/" + args[0] + "/report")
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Get lifetime counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/stats")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint, body string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
