package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/projsync/cmd/projsync"
	"github.com/charmbracelet/lipgloss"
)

func main() {
	rootCmd := projsync.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
