package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Belphemur/ShowFinder/internal/apperrors"
	"github.com/Belphemur/ShowFinder/internal/client"
	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/controller"
	"github.com/Belphemur/ShowFinder/internal/render"
	"github.com/Belphemur/ShowFinder/internal/surface"
)

var (
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	metaStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search shows by title",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		term := ""
		if len(args) == 1 {
			term = args[0]
		}
		expand, _ := cmd.Flags().GetInt("expand")

		page := newTerminalPage()
		if err := page.ctrl.SubmitSearch(cmd.Context(), term); err != nil {
			return err
		}
		printShows(cmd.OutOrStdout(), page.shows.Items())

		if expand == 0 {
			return nil
		}
		action, ok := page.shows.Action(expand)
		if !ok {
			return apperrors.NewShowActionNotFoundError(expand)
		}
		if err := action.Activate(cmd.Context()); err != nil {
			return err
		}
		printEpisodes(cmd.OutOrStdout(), page.episodes)
		return nil
	},
}

var episodesCmd = &cobra.Command{
	Use:   "episodes show-id",
	Short: "List the episodes of a show",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		showID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid show id %q: %w", args[0], err)
		}

		page := newTerminalPage()
		if err := page.ctrl.ExpandShow(cmd.Context(), showID); err != nil {
			return err
		}
		printEpisodes(cmd.OutOrStdout(), page.episodes)
		return nil
	},
}

func init() {
	searchCmd.Flags().Int("expand", 0, "show id from the results whose episodes should be listed")
}

// terminalPage drives the controller against in-memory surfaces.
type terminalPage struct {
	ctrl     *controller.Controller
	shows    *surface.MemoryShows
	episodes *surface.MemoryEpisodes
}

func newTerminalPage() *terminalPage {
	shows := surface.NewMemoryShows()
	episodes := surface.NewMemoryEpisodes()
	return &terminalPage{
		ctrl:     controller.New(client.NewClient(config.GetConfig()), shows, episodes),
		shows:    shows,
		episodes: episodes,
	}
}

func printShows(w io.Writer, items []render.ShowItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, metaStyle.Render("No shows found"))
		return
	}
	for _, item := range items {
		fmt.Fprintf(w, "%s %s\n", headingStyle.Render(item.Heading), metaStyle.Render(fmt.Sprintf("[%d]", item.ShowID)))
		fmt.Fprintln(w, metaStyle.Render(item.ImageSrc))
		if summary := plainText(string(item.Summary)); summary != "" {
			fmt.Fprintln(w, summary)
		}
		fmt.Fprintln(w)
	}
}

func printEpisodes(w io.Writer, episodes *surface.MemoryEpisodes) {
	if !episodes.Visible() {
		return
	}
	fmt.Fprintln(w, sectionStyle.Render("Episodes"))
	for _, text := range episodes.Texts() {
		fmt.Fprintf(w, "  - %s\n", text)
	}
}

// plainText strips the inline markup of a catalog summary for terminal output.
func plainText(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return markup
	}
	return strings.TrimSpace(doc.Text())
}
