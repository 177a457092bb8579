package constants

// ShopItemID names a permanent stat purchase
type ShopItemID string

const (
	ShopHPBoost     ShopItemID = "hpBoost"
	ShopDamageBoost ShopItemID = "dmgBoost"
	ShopCritBoost   ShopItemID = "critBoost"
	ShopSpeedBoost  ShopItemID = "speedBoost"
	ShopExpBoost    ShopItemID = "expBoost"
)

// ShopItem is one purchasable stat level; each level costs Cost cookies
type ShopItem struct {
	ID          ShopItemID `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"desc" yaml:"desc"`
	Cost        int        `json:"cost" yaml:"cost"`
	Limit       int        `json:"limit" yaml:"limit"`
}

// ShopItems lists the shop in display order
var ShopItems = []ShopItem{
	{ID: ShopHPBoost, Name: "방화벽 증설 (HP)", Description: "최대 체력 +30", Cost: 2, Limit: 10},
	{ID: ShopDamageBoost, Name: "백신 강화 (공격력)", Description: "공격력 +15", Cost: 3, Limit: 10},
	{ID: ShopCritBoost, Name: "정밀 타격 (치명타)", Description: "치명타 확률 +10%", Cost: 5, Limit: 10},
	{ID: ShopSpeedBoost, Name: "오버클럭 (속도)", Description: "투사체 속도 +5", Cost: 4, Limit: 5},
	{ID: ShopExpBoost, Name: "학습 가속기 (경험치)", Description: "경험치 획득 +20%", Cost: 6, Limit: 5},
}

// Per-level shop bonuses
const (
	ShopHPPerLevel     = 30
	ShopDamagePerLevel = 15
	ShopCritPerLevel   = 0.1
	ShopSpeedPerLevel  = 5
)

// LookupShopItem returns the item with id
func LookupShopItem(id ShopItemID) (ShopItem, bool) {
	for _, item := range ShopItems {
		if item.ID == id {
			return item, true
		}
	}
	return ShopItem{}, false
}
