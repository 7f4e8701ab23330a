package rewards

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/sat-prep/backend/internal/models"
)

var (
	ErrNoTickets   = errors.New("no tickets left")
	ErrUnknownItem = errors.New("unknown reward item")
	ErrNotOwned    = errors.New("item not in inventory")
)

// Store is the persistence surface for the reward economy.
type Store interface {
	SpendTicket(ctx context.Context, userID int64) (int, error)
	AddItem(ctx context.Context, userID int64, itemName string) (bool, error)
	Owns(ctx context.Context, userID int64, itemName string) (bool, error)
	Inventory(ctx context.Context, userID int64) ([]InventoryRow, error)
	Tickets(ctx context.Context, userID int64) (int, error)
	Equipment(ctx context.Context, userID int64) (icon, theme string, err error)
	SetEquipped(ctx context.Context, userID int64, itemType string, itemName *string) error
}

// Service implements the gacha: ticket spend, 80/20 avatar/theme draw,
// deduplicated inventory, equip/unequip.
type Service struct {
	store Store

	mu  sync.Mutex
	rng *rand.Rand
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewServiceWithRand injects a seeded source; tests use this.
func NewServiceWithRand(store Store, rng *rand.Rand) *Service {
	return &Service{store: store, rng: rng}
}

func (s *Service) draw() models.RewardItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	pool := avatarPool
	if s.rng.Float64() < themeChance {
		pool = themePool
	}
	return pool[s.rng.Intn(len(pool))]
}

// Roll spends a ticket and draws one reward. The spend happens first;
// a duplicate draw still costs the ticket, matching the machine.
func (s *Service) Roll(ctx context.Context, userID int64) (*models.RollResponse, error) {
	remaining, err := s.store.SpendTicket(ctx, userID)
	if err != nil {
		return nil, err
	}

	reward := s.draw()

	added, err := s.store.AddItem(ctx, userID, reward.Name)
	if err != nil {
		return nil, fmt.Errorf("roll: %w", err)
	}

	return &models.RollResponse{
		Reward:      reward,
		Duplicate:   !added,
		TicketsLeft: remaining,
	}, nil
}

func (s *Service) Inventory(ctx context.Context, userID int64) (*models.InventoryResponse, error) {
	rows, err := s.store.Inventory(ctx, userID)
	if err != nil {
		return nil, err
	}
	tickets, err := s.store.Tickets(ctx, userID)
	if err != nil {
		return nil, err
	}
	icon, theme, err := s.store.Equipment(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]models.OwnedItem, 0, len(rows))
	for _, row := range rows {
		item, ok := ItemByName(row.ItemName)
		if !ok {
			// Pool entries can be retired; ignore orphaned inventory rows.
			continue
		}
		items = append(items, models.OwnedItem{RewardItem: item, ObtainedAt: row.ObtainedAt})
	}

	return &models.InventoryResponse{
		Tickets:       tickets,
		Items:         items,
		EquippedIcon:  icon,
		EquippedTheme: theme,
	}, nil
}

// Equip sets the avatar or theme slot to an owned item.
func (s *Service) Equip(ctx context.Context, userID int64, itemName string) (*models.InventoryResponse, error) {
	item, ok := ItemByName(itemName)
	if !ok {
		return nil, ErrUnknownItem
	}

	owns, err := s.store.Owns(ctx, userID, itemName)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, ErrNotOwned
	}

	if err := s.store.SetEquipped(ctx, userID, item.Type, &itemName); err != nil {
		return nil, err
	}
	return s.Inventory(ctx, userID)
}

// Unequip clears one equipment slot.
func (s *Service) Unequip(ctx context.Context, userID int64, itemType string) (*models.InventoryResponse, error) {
	if itemType != TypeAvatar && itemType != TypeTheme {
		return nil, ErrUnknownItem
	}
	if err := s.store.SetEquipped(ctx, userID, itemType, nil); err != nil {
		return nil, err
	}
	return s.Inventory(ctx, userID)
}
