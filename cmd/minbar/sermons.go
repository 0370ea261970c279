package main

import (
	"fmt"
	"strconv"

	"github.com/minbar-sermons-api/internal/services"
	"github.com/spf13/cobra"
)

var (
	listSurah  int
	listSearch string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List sermons, optionally filtered by surah and search term",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, err := openApp(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.Close()

		state := services.AppState{}.SelectSurah(listSurah).WithSearch(listSearch)
		return printOutput(cmd.OutOrStdout(), a.Sermons.ListSermons(state))
	},
}

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one sermon",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		a, _, err := openApp(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.Close()

		sermon, err := a.Sermons.GetSermon(id)
		if err != nil {
			return err
		}
		return printOutput(cmd.OutOrStdout(), sermon)
	},
}

var surahsCmd = &cobra.Command{
	Use:   "surahs",
	Short: "List surahs with their sermon counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, err := openApp(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.Close()
		return printOutput(cmd.OutOrStdout(), a.Sermons.Surahs())
	},
}

var sectionsCmd = &cobra.Command{
	Use:   "sections SURAH",
	Short: "List the selectable sections of a surah",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := parseID(args[0])
		if err != nil {
			return err
		}
		a, _, err := openApp(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.Close()

		sections, err := a.Sermons.Sections(number)
		if err != nil {
			return err
		}
		return printOutput(cmd.OutOrStdout(), sections)
	},
}

var doneCmd = &cobra.Command{
	Use:   "done ID",
	Short: "Toggle the delivered mark of a sermon",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		a, _, err := openApp(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.Sermons.ToggleComplete(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printOutput(cmd.OutOrStdout(), res)
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show how many sermons have been delivered",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, err := openApp(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.Close()
		return printOutput(cmd.OutOrStdout(), a.Sermons.Progress())
	},
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid number %q", arg)
	}
	return id, nil
}

func init() {
	listCmd.Flags().IntVar(&listSurah, "surah", 0, "Surah number (0 for all)")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Case-insensitive search term")

	rootCmd.AddCommand(listCmd, showCmd, surahsCmd, sectionsCmd, doneCmd, progressCmd)
}
