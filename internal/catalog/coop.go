package catalog

import "persona-tracker/internal/model"

// InteractionKind identifies an entry of the coop interaction catalog.
type InteractionKind string

const (
	InteractionContact InteractionKind = "contact"
	InteractionMeet    InteractionKind = "meet"
	InteractionHelp    InteractionKind = "help"
	InteractionGift    InteractionKind = "gift"
	InteractionEvent   InteractionKind = "event"
)

// Interaction is a fixed relationship action and its point value.
type Interaction struct {
	Kind   InteractionKind
	Name   string
	Points int
}

// Interactions is ordered as presented to the user.
var Interactions = []Interaction{
	{Kind: InteractionContact, Name: "連絡", Points: 1},
	{Kind: InteractionMeet, Name: "会う", Points: 2},
	{Kind: InteractionHelp, Name: "手伝う", Points: 3},
	{Kind: InteractionGift, Name: "プレゼント", Points: 2},
	{Kind: InteractionEvent, Name: "イベント", Points: 4},
}

// GetInteraction returns the catalog entry for kind.
func GetInteraction(kind InteractionKind) (Interaction, bool) {
	for _, it := range Interactions {
		if it.Kind == kind {
			return it, true
		}
	}
	return Interaction{}, false
}

// CoopRankThresholds is shared by every relationship.
var CoopRankThresholds = []int{0, 5, 12, 22, 35, 52, 73, 98, 128, 165}

// CoopRankNames labels each entry of CoopRankThresholds.
var CoopRankNames = []string{
	"Rank 1", "Rank 2", "Rank 3", "Rank 4", "Rank 5",
	"Rank 6", "Rank 7", "Rank 8", "Rank 9", "Rank MAX",
}

// Category pairs a coop category with its display name.
type Category struct {
	ID   model.CoopCategory
	Name string
}

// Categories is ordered as presented to the user.
var Categories = []Category{
	{ID: model.CoopFamily, Name: "家族"},
	{ID: model.CoopFriend, Name: "友人"},
	{ID: model.CoopWork, Name: "同僚"},
	{ID: model.CoopOther, Name: "その他"},
}

// CategoryName returns the display name, or "" for unknown categories.
func CategoryName(id model.CoopCategory) string {
	for _, c := range Categories {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}

// Depth describes one memento maturation stage.
type Depth struct {
	Level       int
	Name        string
	Description string
}

// Depths is indexed by depth-1.
var Depths = []Depth{
	{Level: 1, Name: "入口 (Entrance)", Description: "思いつき・未整理"},
	{Level: 2, Name: "思想回廊 (Path)", Description: "思考中・タグ付け済"},
	{Level: 3, Name: "深層 (Core)", Description: "重要・タスク化待ち"},
}

// GetDepth returns the description for level.
func GetDepth(level int) (Depth, bool) {
	if level < model.MinMementoDepth || level > model.MaxMementoDepth {
		return Depth{}, false
	}
	return Depths[level-1], true
}
