package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
	userID  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "assetbook-cli",
		Short: "AssetBook CLI tool",
		Long:  `A command line interface for interacting with the AssetBook API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the AssetBook API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "", "User ID to act as")

	// Depreciation commands
	depreciationCmd := &cobra.Command{
		Use:   "depreciation",
		Short: "Depreciation operations",
	}
	depreciationCmd.AddCommand(runDepreciationCmd())
	depreciationCmd.AddCommand(rollbackDepreciationCmd())
	rootCmd.AddCommand(depreciationCmd)

	// Asset commands
	assetsCmd := &cobra.Command{
		Use:   "assets",
		Short: "Asset operations",
	}
	assetsCmd.AddCommand(countsCmd())
	assetsCmd.AddCommand(previewDisposalCmd())
	rootCmd.AddCommand(assetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runDepreciationCmd() *cobra.Command {
	var toDate string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Post depreciation for all registered assets up to a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := doRequest(http.MethodPost, "/api/v1/depreciation/run", map[string]any{
				"to_date": toDate,
			})
			if err != nil {
				return err
			}
			return printJSON(body)
		},
	}

	cmd.Flags().StringVar(&toDate, "to", "", "Run cutoff date (YYYY-MM-DD)")
	cmd.MarkFlagRequired("to")

	return cmd
}

func rollbackDepreciationCmd() *cobra.Command {
	var cutoff string

	cmd := &cobra.Command{
		Use:   "rollback",
		Short: "Reverse depreciation entries dated after a cutoff",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := doRequest(http.MethodPost, "/api/v1/depreciation/rollback", map[string]any{
				"cutoff": cutoff,
			})
			if err != nil {
				return err
			}
			return printJSON(body)
		},
	}

	cmd.Flags().StringVar(&cutoff, "cutoff", "", "Cutoff date (YYYY-MM-DD)")
	cmd.MarkFlagRequired("cutoff")

	return cmd
}

func countsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "counts",
		Short: "Show how many assets sit in each lifecycle state",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := doRequest(http.MethodGet, "/api/v1/assets/counts", nil)
			if err != nil {
				return err
			}
			return printJSON(body)
		},
	}
}

func previewDisposalCmd() *cobra.Command {
	var (
		disposedOn string
		proceeds   string
		mode       string
	)

	cmd := &cobra.Command{
		Use:   "dispose-preview <asset-id>",
		Short: "Price out a disposal without recording it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]any{
				"disposed_on":   disposedOn,
				"sale_proceeds": proceeds,
			}
			if mode != "" {
				payload["mode"] = mode
			}

			body, err := doRequest(http.MethodPost, "/api/v1/assets/"+args[0]+"/dispose/preview", payload)
			if err != nil {
				return err
			}
			return printJSON(body)
		},
	}

	cmd.Flags().StringVar(&disposedOn, "on", "", "Disposal date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&proceeds, "proceeds", "0", "Sale proceeds")
	cmd.Flags().StringVar(&mode, "mode", "", "Disposal mode (sold or written_off)")
	cmd.MarkFlagRequired("on")

	return cmd
}

// doRequest performs an API call and returns the response body. Non-2xx
// responses surface as errors carrying the body.
func doRequest(method, path string, payload map[string]any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("request failed (status %d): %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// printJSON pretty-prints a JSON response body to stdout.
func printJSON(body []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		// Not JSON, print raw.
		fmt.Println(string(body))
		return nil
	}

	fmt.Println(buf.String())
	return nil
}
