package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"evminspect/internal/evminspect/styles"
	"evminspect/internal/opcode"
)

type opcodeJSON struct {
	Value    string `json:"value"`
	Name     string `json:"name"`
	Operands int    `json:"operands"`
}

func newOpcodesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "opcodes",
		Short: "Print the opcode table used for decoding",
		Long: `Print the active opcode table. The JSON form can be edited and passed back
with --opcodes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable(cmd)
			if err != nil {
				return err
			}
			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				return printOpcodesJSON(cmd, table)
			}

			md := opcodesMarkdown(table)
			if isTerminal(cmd.OutOrStdout()) {
				r, err := styles.GetMarkdownRenderer(100)
				if err != nil {
					return err
				}
				if md, err = r.Render(md); err != nil {
					return err
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		},
	}
	cmd.Flags().String("opcodes", "", "JSON opcode table to print instead of the built-in EVM table")
	cmd.Flags().BoolP("json", "j", false, "Output the table as JSON")
	return cmd
}

func printOpcodesJSON(cmd *cobra.Command, table *opcode.Table) error {
	entries := table.Entries()
	out := make([]opcodeJSON, len(entries))
	for i, e := range entries {
		out[i] = opcodeJSON{Value: fmt.Sprintf("0x%02x", e.Value), Name: e.Name, Operands: e.Operands}
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func opcodesMarkdown(table *opcode.Table) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Opcodes (%d defined)\n\n", table.Len())
	sb.WriteString("| value | name | operands |\n|---|---|---|\n")
	for _, e := range table.Entries() {
		fmt.Fprintf(&sb, "| `0x%02x` | %s | %d |\n", e.Value, e.Name, e.Operands)
	}
	return sb.String()
}
