package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"chatbot-service/internal/config"
	"chatbot-service/internal/domain"
	"chatbot-service/internal/llm"

	"github.com/spf13/cobra"
)

var (
	askSystem      string
	askMaxTokens   int
	askTemperature float64
	askTopP        float64
	askLocal       bool
	askFile        string
)

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Send one message and stream the reply to stdout",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	defaults := domain.DefaultGenerationConfig()
	askCmd.Flags().StringVarP(&askSystem, "system", "s", "", "System prompt (defaults to SYSTEM_PROMPT)")
	askCmd.Flags().IntVar(&askMaxTokens, "max-tokens", defaults.MaxTokens, "Maximum new tokens")
	askCmd.Flags().Float64Var(&askTemperature, "temperature", defaults.Temperature, "Sampling temperature")
	askCmd.Flags().Float64Var(&askTopP, "top-p", defaults.TopP, "Nucleus sampling")
	askCmd.Flags().BoolVarP(&askLocal, "local", "l", false, "Use the local model")
	askCmd.Flags().StringVarP(&askFile, "file", "f", "", "File to add as context")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	genCfg := domain.GenerationConfig{MaxTokens: askMaxTokens, Temperature: askTemperature, TopP: askTopP}
	if err := genCfg.Validate(); err != nil {
		return err
	}

	chatService, cleanup, err := buildService(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	req := &llm.ChatRequest{
		Message:      strings.Join(args, " "),
		SystemPrompt: cfg.SystemPrompt,
		Config:       genCfg,
		Backend:      domain.BackendRemote,
		FilePath:     askFile,
		Credential:   domain.Credential(cfg.HFToken),
	}
	if askSystem != "" {
		req.SystemPrompt = askSystem
	}
	if askLocal {
		req.Backend = domain.BackendLocal
	}

	stream := chatService.Respond(cmd.Context(), req)
	err = printStream(cmd.OutOrStdout(), stream)
	stream.Close()

	// Let the audit write finish before the store is closed.
	chatService.Wait()
	return err
}

// printStream writes each value's new suffix so the reply appears as it is
// generated. A notice replaces whatever was shown before it.
func printStream(w io.Writer, stream llm.Stream) error {
	var shown string
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if chunk.Kind == llm.ChunkNotice || !strings.HasPrefix(chunk.Text, shown) {
			if shown != "" {
				fmt.Fprintln(w)
			}
			shown = ""
		}
		fmt.Fprint(w, chunk.Text[len(shown):])
		shown = chunk.Text
	}
	fmt.Fprintln(w)
	return nil
}
