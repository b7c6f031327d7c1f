package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/yuanying/epubnav/internal/nav"
)

func newBookmarkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookmark",
		Short: "Save, list and restore bookmarks",
	}
	cmd.AddCommand(
		newBookmarkAddCmd(),
		newBookmarkListCmd(),
		newBookmarkGoToCmd(),
		newBookmarkDeleteCmd(),
	)
	return cmd
}

func newBookmarkAddCmd() *cobra.Command {
	var at, name string
	cmd := &cobra.Command{
		Use:   "add BOOK",
		Short: "Bookmark a position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, cleanup, err := openSession(ctx, cmd, args[0], true)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := displayFrom(cmd, s, at); err != nil {
				return err
			}
			b, err := s.AddBookmark(ctx, name)
			if errors.Is(err, nav.ErrLocationUnavailable) {
				return fmt.Errorf("location not ready, wait and retry: %w", err)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved bookmark %d %q at %s\n", b.ID, b.Name, derefString(b.CFI))
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "Href or CFI to bookmark (default: initial location)")
	cmd.Flags().StringVar(&name, "name", "", "Bookmark name (default: chapter label or progress)")
	return cmd
}

func newBookmarkListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list BOOK",
		Short: "List the bookmarks of a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := openSession(cmd.Context(), cmd, args[0], true)
			if err != nil {
				return err
			}
			defer cleanup()

			list, err := s.Bookmarks(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No bookmarks.")
				return nil
			}

			rows := make([][]string, 0, len(list))
			for _, b := range list {
				progress := "-"
				if b.PositionPercentage != nil {
					progress = fmt.Sprintf("%.1f%%", *b.PositionPercentage)
				}
				rows = append(rows, []string{
					strconv.FormatInt(b.ID, 10),
					b.Name,
					derefString(b.ChapterTitle),
					progress,
					derefString(b.CFI),
					b.CreatedAt.Local().Format(time.DateTime),
				})
			}
			headers := []string{"ID", "Name", "Chapter", "Progress", "CFI", "Created"}
			fmt.Fprintln(out, renderTable(out, headers, rows, []columnAlignment{alignRight, alignLeft, alignLeft, alignRight}))
			return nil
		},
	}
}

func newBookmarkGoToCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "goto BOOK ID",
		Short: "Restore a bookmark",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseBookmarkID(args[1])
			if err != nil {
				return err
			}
			s, cleanup, err := openSession(cmd.Context(), cmd, args[0], true)
			if err != nil {
				return err
			}
			defer cleanup()

			target, err := s.GoToBookmark(cmd.Context(), id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Restored bookmark %d via %s.\n", id, target.Strategy)
			printLocation(out, s)
			return nil
		},
	}
}

func newBookmarkDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete BOOK ID",
		Short: "Delete a bookmark",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseBookmarkID(args[1])
			if err != nil {
				return err
			}
			s, cleanup, err := openSession(cmd.Context(), cmd, args[0], true)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := s.DeleteBookmark(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted bookmark %d.\n", id)
			return nil
		},
	}
}

func parseBookmarkID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid bookmark id %q", raw)
	}
	return id, nil
}

func derefString(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
