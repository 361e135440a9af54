package cmd

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

func newContractsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contracts",
		Short: "List contracts with stored memory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			contracts, err := s.Contracts()
			if err != nil {
				return err
			}
			for _, c := range contracts {
				fmt.Fprintln(cmd.OutOrStdout(), common.Bytes2Hex(c.Bytes()))
			}
			return nil
		},
	}
}
