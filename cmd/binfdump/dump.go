package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aldas/go-binfield"
	"github.com/aldas/go-binfield/pgn"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	dumpPGN    int
	dumpFormat string
)

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Decode a raw binary file using a built-in schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().IntVar(&dumpPGN, "pgn", 0, "PGN number selecting the schema to decode with")
	dumpCmd.Flags().StringVarP(&dumpFormat, "format", "f", "text", "output format (text, json)")
}

func runDump(cmd *cobra.Command, args []string) error {
	schema, ok := pgn.All()[dumpPGN]
	if !ok {
		return fmt.Errorf("unknown --pgn %d, see `binfdump schemas`", dumpPGN)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	rec, n, err := schema.ParseBytes(data)
	if err != nil {
		return fmt.Errorf("failed to decode %s as PGN %d: %w", args[0], dumpPGN, err)
	}

	switch dumpFormat {
	case "json":
		return dumpJSON(rec)
	case "text":
		return dumpText(rec, n)
	default:
		return fmt.Errorf("unknown format: %s", dumpFormat)
	}
}

func dumpJSON(rec *binfield.Record) error {
	enc := json.NewEncoder(output)
	enc.SetIndent("", "  ")
	return enc.Encode(rec.Values)
}

func dumpText(rec *binfield.Record, consumed int) error {
	pterm.Fprintln(output, pterm.DefaultHeader.Sprintf("%s (%d bytes)", rec.Schema.Name, consumed))
	rows := [][]string{{"field", "value"}}
	for _, fe := range rec.Schema.Fields {
		v, _ := rec.Get(fe.Name)
		rows = append(rows, []string{fe.Name, fmt.Sprintf("%v", v)})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
	if err != nil {
		return err
	}
	pterm.Fprintln(output, table)
	return nil
}
