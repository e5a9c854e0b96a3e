package main

import (
	"encoding/hex"
	"fmt"

	"github.com/fgeck/gowake/internal/wol"
	"github.com/spf13/cobra"
)

var packetCmd = &cobra.Command{
	Use:   "packet <mac-or-host>",
	Short: "Print the magic packet for a target without sending it",
	Args:  cobra.ExactArgs(1),
	RunE:  printPacket,
}

func printPacket(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	hw, err := wol.ParseMAC(cfg.MACFor(args[0]))
	if err != nil {
		return err
	}

	pkt, err := wol.NewMagicPacket(hw)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), hex.Dump(pkt))
	return nil
}
