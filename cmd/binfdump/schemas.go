package main

import (
	"sort"

	"github.com/aldas/go-binfield/pgn"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "List the built-in PGN schemas and their field names",
	RunE:  runSchemas,
}

func runSchemas(cmd *cobra.Command, args []string) error {
	all := pgn.All()
	numbers := make([]int, 0, len(all))
	for n := range all {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	rows := [][]string{{"pgn", "schema", "fields"}}
	for _, n := range numbers {
		s := all[n]
		names := make([]string, 0, len(s.Fields))
		for _, fe := range s.Fields {
			names = append(names, fe.Name)
		}
		rows = append(rows, []string{pterm.Sprintf("%d", n), s.Name, pterm.Sprintf("%v", names)})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
	if err != nil {
		return err
	}
	pterm.Fprintln(output, table)
	return nil
}
