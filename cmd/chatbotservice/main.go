package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chatbotservice",
	Short: "Streaming chatbot backed by a hosted or a local model",
	Long: `chatbotservice assembles a conversation from the chat history, an optional
uploaded file and a new message, and streams the model's reply.

Examples:
  chatbotservice serve                          # start the http api
  chatbotservice ask "What is machine learning?"
  chatbotservice ask --local "Write a haiku about coding"
  chatbotservice audit --limit 5                # recent recorded exchanges`,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	SilenceUsage:      true,
}

// main is the entry point for the ChatbotService.
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
