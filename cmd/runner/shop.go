package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/boko-runner/internal/profile"
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "List the shop items",
	Long: `List the shop catalogue with prices and what you already own.

Examples:
  runner shop
  runner shop buy doubler`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := openApp(cmd.Context(), false)
		if err != nil {
			fail("opening profile: %v", err)
		}
		defer a.Close()

		fmt.Printf("Shop - wallet: %d\n", a.profile.Wallet())
		fmt.Println()
		fmt.Printf("  %-20s  %-16s  %6s  %-6s  %s\n", "ID", "Item", "Price", "Owned", "Effect")
		fmt.Printf("  %-20s  %-16s  %6s  %-6s  %s\n", "--", "----", "-----", "-----", "------")
		for _, it := range profile.Catalogue {
			owned := ""
			if a.profile.Activated(it.ID) {
				owned = "yes"
			}
			fmt.Printf("  %-20s  %-16s  %6d  %-6s  %s\n", it.ID, it.Name, it.Price, owned, it.Description)
		}
	},
}

var shopBuyCmd = &cobra.Command{
	Use:   "buy <item>",
	Short: "Buy a shop item with the wallet",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		item, ok := resolveItem(args[0])
		if !ok {
			fail("unknown item %q\nRun 'runner shop' to see the catalogue.", args[0])
		}

		a, err := openApp(ctx, false)
		if err != nil {
			fail("opening profile: %v", err)
		}
		defer a.Close()

		err = a.profile.Buy(item.ID)
		switch {
		case errors.Is(err, profile.ErrInsufficientFunds):
			fail("%s costs %d, wallet holds %d", item.Name, item.Price, a.profile.Wallet())
		case errors.Is(err, profile.ErrAlreadyOwned):
			fmt.Printf("%s is already yours.\n", item.Name)
			return
		case err != nil:
			fail("%v", err)
		}
		if err := a.save(ctx); err != nil {
			fail("saving profile: %v", err)
		}
		fmt.Printf("Bought %s. Wallet: %d\n", item.Name, a.profile.Wallet())
	},
}

func init() {
	shopCmd.AddCommand(shopBuyCmd)
}

// resolveItem accepts a catalogue id with or without its shop_ prefix.
func resolveItem(arg string) (profile.Item, bool) {
	id := strings.ToLower(strings.TrimSpace(arg))
	if !strings.HasPrefix(id, "shop_") {
		id = "shop_" + id
	}
	return profile.LookupItem(profile.ItemID(id))
}
