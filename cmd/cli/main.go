package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bookkeep-cli",
		Short: "Bookkeep CLI tool",
		Long:  `A command line interface for interacting with the bookkeep API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the bookkeep API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(accountCmd())
	rootCmd.AddCommand(doctypeCmd())
	rootCmd.AddCommand(trialBalanceCmd())
	rootCmd.AddCommand(hammerCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Chart-of-accounts operations",
	}

	var (
		id           int64
		name         string
		accountType  string
		officialCode string
	)

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/accounts", map[string]any{
				"id":            id,
				"name":          name,
				"type":          accountType,
				"official_code": officialCode,
			})
		},
	}

	createCmd.Flags().Int64Var(&id, "id", 0, "Account number")
	createCmd.Flags().StringVar(&name, "name", "", "Account name")
	createCmd.Flags().StringVar(&accountType, "type", "mixed", "Account type (active, passive, mixed)")
	createCmd.Flags().StringVar(&officialCode, "code", "", "Official chart code")
	createCmd.MarkFlagRequired("id")
	createCmd.MarkFlagRequired("name")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts")
		},
	}

	cmd.AddCommand(createCmd)
	cmd.AddCommand(listCmd)

	return cmd
}

func doctypeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctype",
		Short: "Document type operations",
	}

	var name, description string

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a document type",
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/document-types", map[string]any{
				"name":        name,
				"description": description,
			})
		},
	}

	createCmd.Flags().StringVar(&name, "name", "", "Type name")
	createCmd.Flags().StringVar(&description, "description", "", "Description")
	createCmd.MarkFlagRequired("name")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List document types",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/document-types")
		},
	}

	cmd.AddCommand(createCmd)
	cmd.AddCommand(listCmd)

	return cmd
}

func trialBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trial-balance",
		Short: "Audit that debits equal credits per currency",
		Run: func(cmd *cobra.Command, args []string) {
			resp := request(http.MethodGet, "/api/v1/trial-balance", nil)
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)

			switch resp.StatusCode {
			case http.StatusOK:
				fmt.Println("Trial balance PASSED")
			case http.StatusConflict:
				fmt.Println("Trial balance FAILED: ledger is unbalanced")
			default:
				fmt.Printf("Unexpected status %d\n", resp.StatusCode)
			}

			fmt.Println(string(body))

			if resp.StatusCode != http.StatusOK {
				os.Exit(1)
			}
		},
	}
}

// hammerCmd fires concurrent transfers between two person balances on
// the same document, which is the quickest way to provoke lock
// contention and deadlock restarts against a running server.
func hammerCmd() *cobra.Command {
	var (
		workers     int
		iterations  int
		documentID  string
		debitAcct   int64
		creditAcct  int64
		debitPerson string
		creditPer   string
		amountCents int64
		currency    string
	)

	cmd := &cobra.Command{
		Use:   "hammer",
		Short: "Stress the transfer endpoint with concurrent requests",
		Run: func(cmd *cobra.Command, args []string) {
			client := &http.Client{Timeout: timeout}

			var ok, failed int64

			var wg sync.WaitGroup
			for w := 0; w < workers; w++ {
				wg.Add(1)

				go func(worker int) {
					defer wg.Done()

					for i := 0; i < iterations; i++ {
						payload, _ := json.Marshal(map[string]any{
							"date":        time.Now().UTC().Format(time.RFC3339),
							"document_id": documentID,
							"description": fmt.Sprintf("hammer worker %d iteration %d", worker, i),
							"transactions": []map[string]any{{
								"amount_cents":      amountCents,
								"currency":          currency,
								"debit_account_id":  debitAcct,
								"credit_account_id": creditAcct,
								"debit_person_id":   debitPerson,
								"credit_person_id":  creditPer,
							}},
						})

						resp, err := client.Post(baseURL+"/api/v1/transfers", "application/json", bytes.NewReader(payload))
						if err != nil {
							atomic.AddInt64(&failed, 1)
							continue
						}

						io.Copy(io.Discard, resp.Body)
						resp.Body.Close()

						if resp.StatusCode == http.StatusCreated {
							atomic.AddInt64(&ok, 1)
						} else {
							atomic.AddInt64(&failed, 1)
						}
					}
				}(w)
			}

			wg.Wait()

			fmt.Printf("done: %d succeeded, %d failed\n", ok, failed)

			if failed > 0 {
				os.Exit(1)
			}
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 8, "Concurrent workers")
	cmd.Flags().IntVar(&iterations, "iterations", 50, "Transfers per worker")
	cmd.Flags().StringVar(&documentID, "document", "", "Document ID to book against")
	cmd.Flags().Int64Var(&debitAcct, "debit-account", 0, "Debit account number")
	cmd.Flags().Int64Var(&creditAcct, "credit-account", 0, "Credit account number")
	cmd.Flags().StringVar(&debitPerson, "debit-person", "", "Debit person ID")
	cmd.Flags().StringVar(&creditPer, "credit-person", "", "Credit person ID")
	cmd.Flags().Int64Var(&amountCents, "amount", 1, "Amount in minor units")
	cmd.Flags().StringVar(&currency, "currency", "EUR", "Currency code")
	cmd.MarkFlagRequired("document")
	cmd.MarkFlagRequired("debit-account")
	cmd.MarkFlagRequired("credit-account")

	return cmd
}

func request(method, path string, body []byte) *http.Response {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(method, baseURL+path, bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}

	return resp
}

func postJSON(path string, payload map[string]any) {
	body, _ := json.Marshal(payload)

	resp := request(http.MethodPost, path, body)
	defer resp.Body.Close()

	printResponse(resp)
}

func getJSON(path string) {
	resp := request(http.MethodGet, path, nil)
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	var pretty bytes.Buffer
	if json.Indent(&pretty, body, "", "  ") == nil {
		fmt.Println(pretty.String())
	} else {
		fmt.Println(string(body))
	}

	if resp.StatusCode >= 400 {
		fmt.Printf("Status: %d\n", resp.StatusCode)
		os.Exit(1)
	}
}
