package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/creamcroissant/shopfront/internal/tui"
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Launch the interactive storefront",
	Long:  "Launch an interactive terminal UI to browse products, manage the cart and follow orders.",
	RunE:  runShop,
}

func init() {
	rootCmd.AddCommand(shopCmd)
}

func runShop(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client, st, _, err := newClient(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if !client.Session().LoggedIn() {
		return fmt.Errorf("not logged in, run `shopfront login` first")
	}

	model := tui.NewModel(client)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}
