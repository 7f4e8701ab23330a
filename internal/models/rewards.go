package models

import "time"

// RewardItem is one entry of the fixed gacha pool.
type RewardItem struct {
	Name         string            `json:"name"`
	Type         string            `json:"type"`
	Rarity       string            `json:"rarity"`
	IconSrc      string            `json:"icon_src"`
	CSSVariables map[string]string `json:"css_variables,omitempty"`
}

// OwnedItem is an inventory entry joined back to its pool definition.
type OwnedItem struct {
	RewardItem
	ObtainedAt time.Time `json:"obtained_at"`
}

type InventoryResponse struct {
	Tickets       int         `json:"tickets"`
	Items         []OwnedItem `json:"items"`
	EquippedIcon  string      `json:"equipped_icon,omitempty"`
	EquippedTheme string      `json:"equipped_theme,omitempty"`
}

type RollResponse struct {
	Reward      RewardItem `json:"reward"`
	Duplicate   bool       `json:"duplicate"`
	TicketsLeft int        `json:"tickets_left"`
}

type EquipRequest struct {
	ItemName string `json:"item_name"`
}

type UnequipRequest struct {
	ItemType string `json:"item_type"`
}
