package profile

import (
	"errors"

	"github.com/vovakirdan/boko-runner/internal/games/runner"
)

var (
	ErrInsufficientFunds = errors.New("profile: not enough coins in wallet")
	ErrUnknownItem       = errors.New("profile: unknown shop item")
	ErrAlreadyOwned      = errors.New("profile: item already bought")
	ErrSkinLocked        = errors.New("profile: skin not bought")
)

// ItemID identifies a shop item. The values are part of the save format.
type ItemID string

const (
	ItemDoubler       ItemID = "shop_doubler"
	ItemShieldPlus    ItemID = "shop_shield_plus"
	ItemMegaPlus      ItemID = "shop_mega_plus"
	ItemFlyPlus       ItemID = "shop_fly_plus"
	ItemMorphballSkin ItemID = "shop_morphball_skin"
	ItemPokeballSkin  ItemID = "shop_pokeball_skin"
)

// Item is an entry of the shop catalogue.
type Item struct {
	ID          ItemID
	Name        string
	Description string
	Price       int
	Skin        Skin // set for cosmetic items
}

// Catalogue is the fixed list of shop items in display order.
var Catalogue = []Item{
	{ItemDoubler, "Doubler", "Coins are worth twice as much", 1000, ""},
	{ItemShieldPlus, "Shield+", "Shields also block heavy enemies", 100, ""},
	{ItemMegaPlus, "Mega+", "Mega bonus lasts longer", 200, ""},
	{ItemFlyPlus, "Fly+", "Fly bonus lasts longer", 180, ""},
	{ItemMorphballSkin, "Morphball skin", "Unlocks the morphing skin", 500, SkinMorphing},
	{ItemPokeballSkin, "Pokeball skin", "Unlocks the pokeball skin", 60, SkinPokeball},
}

// LookupItem finds a catalogue item by id.
func LookupItem(id ItemID) (Item, bool) {
	for _, it := range Catalogue {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// skinItem returns the item that unlocks skin.
func skinItem(skin Skin) (ItemID, bool) {
	for _, it := range Catalogue {
		if it.Skin == skin && skin != "" {
			return it.ID, true
		}
	}
	return "", false
}

// perksFor maps owned items to the bonuses they grant in a run.
func perksFor(owned map[ItemID]bool) runner.Perks {
	return runner.Perks{
		Doubler:    owned[ItemDoubler],
		ShieldPlus: owned[ItemShieldPlus],
		MegaPlus:   owned[ItemMegaPlus],
		FlyPlus:    owned[ItemFlyPlus],
	}
}
