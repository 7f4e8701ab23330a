package rewards

import "github.com/sat-prep/backend/internal/models"

const (
	TypeAvatar = "avatar"
	TypeTheme  = "theme"
)

// themeChance is the probability a roll draws from the theme pool
// instead of the avatar pool.
const themeChance = 0.2

// avatarNames match the PNG filenames in the frontend's icons/ folder.
var avatarNames = []string{
	"Berry Bubble",
	"Blush Marble",
	"Citrus Puff",
	"Cloud Pop",
	"Frost Orb",
	"Glow Pearl",
	"Magenta Marble",
	"Mint Puff",
	"Moon Pearl",
	"Nebula Dot",
	"Pastel Blob",
	"Rose Pop",
	"Sky Dot",
	"Soft Orb",
	"Sun Bubble",
}

var avatarPool = buildAvatarPool()

func buildAvatarPool() []models.RewardItem {
	pool := make([]models.RewardItem, 0, len(avatarNames))
	for _, name := range avatarNames {
		pool = append(pool, models.RewardItem{
			Name:    name,
			Type:    TypeAvatar,
			Rarity:  "common",
			IconSrc: "icons/" + name + ".png",
		})
	}
	return pool
}

var themePool = []models.RewardItem{
	{
		Name:    "Ocean Breeze",
		Type:    TypeTheme,
		Rarity:  "rare",
		IconSrc: "icons/Ocean Breeze.png",
		CSSVariables: map[string]string{
			"--primary-color":    "#0ea5e9",
			"--secondary-color":  "#06b6d4",
			"--accent-color":     "#22d3ee",
			"--bg-gradient-start": "#0c4a6e",
			"--bg-gradient-end":   "#075985",
		},
	},
	{
		Name:    "Forest Green",
		Type:    TypeTheme,
		Rarity:  "rare",
		IconSrc: "icons/Forest Green.png",
		CSSVariables: map[string]string{
			"--primary-color":    "#10b981",
			"--secondary-color":  "#059669",
			"--accent-color":     "#34d399",
			"--bg-gradient-start": "#064e3b",
			"--bg-gradient-end":   "#065f46",
		},
	},
	{
		Name:    "Sunset Glow",
		Type:    TypeTheme,
		Rarity:  "epic",
		IconSrc: "icons/Sunset Glow.png",
		CSSVariables: map[string]string{
			"--primary-color":    "#f59e0b",
			"--secondary-color":  "#d97706",
			"--accent-color":     "#fbbf24",
			"--bg-gradient-start": "#78350f",
			"--bg-gradient-end":   "#92400e",
		},
	},
	{
		Name:    "Purple Dream",
		Type:    TypeTheme,
		Rarity:  "epic",
		IconSrc: "icons/Purple Dream.png",
		CSSVariables: map[string]string{
			"--primary-color":    "#a855f7",
			"--secondary-color":  "#9333ea",
			"--accent-color":     "#c084fc",
			"--bg-gradient-start": "#581c87",
			"--bg-gradient-end":   "#6b21a8",
		},
	},
}

var poolByName = buildPoolIndex()

func buildPoolIndex() map[string]models.RewardItem {
	index := make(map[string]models.RewardItem, len(avatarPool)+len(themePool))
	for _, item := range avatarPool {
		index[item.Name] = item
	}
	for _, item := range themePool {
		index[item.Name] = item
	}
	return index
}

// ItemByName resolves an inventory name string to its pool definition.
func ItemByName(name string) (models.RewardItem, bool) {
	item, ok := poolByName[name]
	return item, ok
}
