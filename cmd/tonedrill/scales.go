package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"tonedrill/theory"
)

func scalesCmd() *cobra.Command {
	var keyName string

	cmd := &cobra.Command{
		Use:   "scales",
		Short: "List the scales and their notes in a key",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := theory.ParseNote(keyName)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), scaleTable(key))
			return nil
		},
	}
	cmd.Flags().StringVarP(&keyName, "key", "k", "C", "Key to spell the scales in")

	return cmd
}

func scaleTable(key theory.Note) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Scale", "Degrees", "Notes in "+key.String(), "Chords")

	for _, sc := range theory.Scales() {
		var degrees, notes, chords []string
		for i, n := range sc.Notes(key) {
			degrees = append(degrees, string(sc.Degrees[i].Interval))
			notes = append(notes, n.String())
			if c, ok := theory.DiatonicChord(sc, key, n); ok {
				chords = append(chords, c.String())
			}
		}
		t.Row(sc.Name, strings.Join(degrees, " "), strings.Join(notes, " "), strings.Join(chords, " "))
	}

	return t.String()
}
