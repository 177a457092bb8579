// Package shop holds the student's cookie balance and permanent stat purchases
package shop

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/system-defender/components"
	"github.com/lixenwraith/system-defender/constants"
)

var (
	ErrUnknownItem         = errors.New("unknown shop item")
	ErrInsufficientCookies = errors.New("not enough cookies")
	ErrPurchaseLimit       = errors.New("purchase limit reached")
)

// Profile is one student's shop state
// Not safe for concurrent use; callers serialize access
type Profile struct {
	StudentName string                       `json:"studentName" yaml:"student_name"`
	Cookies     int                          `json:"cookies" yaml:"cookies"`
	Purchases   map[constants.ShopItemID]int `json:"purchases" yaml:"purchases"`
}

// NewProfile creates a profile with no purchases
func NewProfile(name string, cookies int) *Profile {
	return &Profile{
		StudentName: name,
		Cookies:     cookies,
		Purchases:   make(map[constants.ShopItemID]int),
	}
}

// Level returns how many levels of id were bought
func (p *Profile) Level(id constants.ShopItemID) int {
	return p.Purchases[id]
}

// CanBuy reports whether the next level of id is affordable and under the limit
func (p *Profile) CanBuy(id constants.ShopItemID) bool {
	item, ok := constants.LookupShopItem(id)
	return ok && p.Cookies >= item.Cost && p.Level(id) < item.Limit
}

// Purchase buys one level of id
func (p *Profile) Purchase(id constants.ShopItemID) error {
	item, ok := constants.LookupShopItem(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}
	if p.Level(id) >= item.Limit {
		return fmt.Errorf("%w: %s at %d", ErrPurchaseLimit, id, item.Limit)
	}
	if p.Cookies < item.Cost {
		return fmt.Errorf("%w: %s costs %d, have %d", ErrInsufficientCookies, id, item.Cost, p.Cookies)
	}

	if p.Purchases == nil {
		p.Purchases = make(map[constants.ShopItemID]int)
	}
	p.Cookies -= item.Cost
	p.Purchases[id]++
	return nil
}

// Spent returns the cookies tied up in purchases
func (p *Profile) Spent() int {
	total := 0
	for _, item := range constants.ShopItems {
		total += item.Cost * p.Level(item.ID)
	}
	return total
}

// Reset refunds every purchase and returns the refunded amount
func (p *Profile) Reset() int {
	refund := p.Spent()
	p.Cookies += refund
	p.Purchases = make(map[constants.ShopItemID]int)
	return refund
}

// Bonuses converts purchase levels into the stat bonus applied at each start
func (p *Profile) Bonuses() components.StatBonus {
	return components.StatBonus{
		MaxHP:           p.Level(constants.ShopHPBoost) * constants.ShopHPPerLevel,
		Damage:          float64(p.Level(constants.ShopDamageBoost) * constants.ShopDamagePerLevel),
		CritChance:      float64(p.Level(constants.ShopCritBoost)) * constants.ShopCritPerLevel,
		ProjectileSpeed: float64(p.Level(constants.ShopSpeedBoost) * constants.ShopSpeedPerLevel),
		ExpBoostLevel:   p.Level(constants.ShopExpBoost),
	}
}
