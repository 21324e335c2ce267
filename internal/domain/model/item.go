// Package model contains domain models passed between layers.
package model

// Item is one entry of the reference ranking.
// Fields mirror the JSON shape returned by GET /items.
type Item struct {
	Name        string `json:"name"`           // unique key
	Rank        int    `json:"reference_rank"` // 1-based expert rank
	Description string `json:"description"`    // why the item matters
}

// referenceItems is the NASA expert ordering. It is copied out by
// DefaultItems and never handed out directly.
var referenceItems = [...]Item{ //nolint:gochecknoglobals // read-only reference table
	{Name: "氧氣瓶", Rank: 1, Description: "呼吸"},
	{Name: "水", Rank: 2, Description: "補充液體"},
	{Name: "星圖", Rank: 3, Description: "導航"},
	{Name: "食物濃縮物", Rank: 4, Description: "營養"},
	{Name: "太陽能電池板", Rank: 5, Description: "電力"},
	{Name: "衣服補丁", Rank: 6, Description: "防止失壓"},
	{Name: "醫療箱", Rank: 7, Description: "急救"},
	{Name: "繩索", Rank: 8, Description: "安全/移動"},
	{Name: "降落傘", Rank: 9, Description: "防止隕石碰撞"},
	{Name: "救生筏", Rank: 10, Description: "隱蔽所"},
	{Name: "信號鏡", Rank: 11, Description: "通信"},
	{Name: "手電筒", Rank: 12, Description: "照明"},
	{Name: "火柴", Rank: 13, Description: "點火"},
	{Name: "月球地圖", Rank: 14, Description: "導航輔助"},
	{Name: "磁羅盤", Rank: 15, Description: "導航（不太有效）"},
}

// DefaultItems returns a fresh copy of the reference table in rank order.
func DefaultItems() []Item {
	out := make([]Item, len(referenceItems))
	copy(out, referenceItems[:])
	return out
}

// Names returns the item names in the order given.
func Names(items []Item) []string {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	return names
}
