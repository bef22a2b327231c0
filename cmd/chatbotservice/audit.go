package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"chatbot-service/internal/config"

	"github.com/spf13/cobra"
)

var auditLimit int

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "List recently recorded exchanges",
	Args:  cobra.NoArgs,
	RunE:  runAudit,
}

func init() {
	auditCmd.Flags().IntVarP(&auditLimit, "limit", "n", 20, "Number of exchanges to show")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	db, repo, err := openAudit(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	if repo == nil {
		return errors.New("auditing is off: set AUDIT_DRIVER and AUDIT_DSN")
	}
	defer db.Close()

	exchanges, err := repo.RecentExchanges(cmd.Context(), auditLimit)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CREATED\tBACKEND\tMODEL\tTOKENS\tELAPSED\tSTATUS")
	for _, ex := range exchanges {
		status := "ok"
		if ex.Error != "" {
			status = "error: " + ex.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d/%d\t%s\t%s\n",
			ex.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			ex.Backend.Label(),
			ex.Model,
			ex.PromptTokens, ex.CompletionTokens,
			ex.Elapsed,
			status,
		)
	}
	return tw.Flush()
}
