package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yuanying/epubnav/internal/nav"
	"github.com/yuanying/epubnav/internal/session"
)

func newChaptersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chapters BOOK",
		Short: "List the chapters of a book and where reading starts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := openSession(cmd.Context(), cmd, args[0], false)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			doc := s.Document()
			rows := make([][]string, 0, len(doc.Chapters))
			for i, ch := range doc.Chapters {
				rows = append(rows, []string{strconv.Itoa(i), ch.Label, ch.Href})
			}
			fmt.Fprintln(out, renderTable(out, []string{"#", "Chapter", "Href"}, rows, []columnAlignment{alignRight}))

			if start, ok := doc.InitialLocation(); ok {
				fmt.Fprintf(out, "Start: %s\n", start)
			} else {
				fmt.Fprintln(out, "Start: (book default)")
			}
			return nil
		},
	}
}

func newTOCCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toc BOOK",
		Short: "Show the table of contents with repaired links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := openSession(cmd.Context(), cmd, args[0], false)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			var rows [][]string
			appendTOCRows(&rows, s.Document().TOC, s.Book().TOC(), 0)
			fmt.Fprintln(out, renderTable(out, []string{"Entry", "Href", "Original"}, rows, nil))
			return nil
		},
	}
}

// appendTOCRows flattens the corrected TOC, showing the original href of
// every entry whose link was rewritten.
func appendTOCRows(rows *[][]string, corrected, original []nav.NavItem, depth int) {
	for i, item := range corrected {
		was := ""
		var origChildren []nav.NavItem
		if i < len(original) {
			if original[i].Href != item.Href {
				was = original[i].Href
			}
			origChildren = original[i].Children
		}
		*rows = append(*rows, []string{strings.Repeat("  ", depth) + item.Label, item.Href, was})
		appendTOCRows(rows, item.Children, origChildren, depth+1)
	}
}

func newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start BOOK",
		Short: "Open a book at its initial reading position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := openSession(cmd.Context(), cmd, args[0], false)
			if err != nil {
				return err
			}
			defer cleanup()

			if _, err := s.Start(cmd.Context()); err != nil {
				return err
			}
			printLocation(cmd.OutOrStdout(), s)
			return nil
		},
	}
}

func newStepCmd(name, short string) *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   name + " BOOK",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, cleanup, err := openSession(ctx, cmd, args[0], false)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := displayFrom(cmd, s, from); err != nil {
				return err
			}

			step := s.Next
			if name == "prev" {
				step = s.Previous
			}
			tier, err := step(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if tier == "" {
				fmt.Fprintln(out, "No further section in this direction.")
			} else {
				fmt.Fprintf(out, "Moved via %s.\n", tier)
			}
			printLocation(out, s)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Href or CFI to start from (default: initial location)")
	return cmd
}

func newGoToCmd() *cobra.Command {
	var chapter int
	cmd := &cobra.Command{
		Use:   "goto BOOK [TARGET]",
		Short: "Display an href, a CFI or a chapter by index",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			chapterSet := cmd.Flags().Changed("chapter")
			if chapterSet == (len(args) == 2) {
				return fmt.Errorf("specify exactly one of TARGET or --chapter")
			}

			s, cleanup, err := openSession(ctx, cmd, args[0], false)
			if err != nil {
				return err
			}
			defer cleanup()

			if chapterSet {
				err = s.GoToChapter(ctx, chapter)
			} else {
				err = s.Display(ctx, args[1])
			}
			if err != nil {
				return err
			}
			printLocation(cmd.OutOrStdout(), s)
			return nil
		},
	}
	cmd.Flags().IntVar(&chapter, "chapter", 0, "Chapter index as listed by the chapters command")
	return cmd
}

func newLabelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "label BOOK HREF",
		Short: "Resolve the chapter label shown for an href",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := openSession(cmd.Context(), cmd, args[0], false)
			if err != nil {
				return err
			}
			defer cleanup()

			doc := s.Document()
			label, ok := nav.LabelFor(args[1], doc.TOC, doc.Landmarks)
			if !ok {
				return fmt.Errorf("no label for %s", args[1])
			}
			fmt.Fprintln(cmd.OutOrStdout(), label)
			return nil
		},
	}
}

// displayFrom shows target, or the initial location when target is empty.
func displayFrom(cmd *cobra.Command, s *session.Session, target string) error {
	if target == "" {
		_, err := s.Start(cmd.Context())
		return err
	}
	return s.Display(cmd.Context(), target)
}

func printLocation(out io.Writer, s *session.Session) {
	loc := s.Location()
	label, ok := s.Label()
	if !ok {
		label = "-"
	}
	rows := [][]string{
		{"Chapter", label},
		{"Href", loc.Href},
		{"CFI", loc.CFI},
	}
	if idx := s.ChapterIndex(); idx >= 0 {
		rows = append(rows, []string{"Chapter #", strconv.Itoa(idx)})
	}
	fmt.Fprintln(out, renderTable(out, []string{"Field", "Value"}, rows, nil))
}
