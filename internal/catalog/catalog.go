// Package catalog holds the fixed tables the engines are seeded from:
// default stats and actions, the coop interaction catalog and rank table,
// coop categories and memento depth descriptions.
package catalog

import (
	"persona-tracker/internal/model"
)

// Fallbacks for stat records that are neither complete nor in the default table.
var (
	FallbackRankLabels = []string{"Lv1", "Lv2", "Lv3", "Lv4", "Lv5"}
	FallbackThresholds = []int{0, 34, 82, 126, 192}
)

// DefaultIcon is used when an action is created without one.
const DefaultIcon = "⚡"

var defaultStats = []model.Stat{
	{
		ID:         "knowledge",
		Name:       "知識",
		RankLabels: []string{"平均的", "物知り", "インテリ", "博識", "知恵の泉"},
		Thresholds: []int{0, 34, 82, 126, 192},
	},
	{
		ID:         "guts",
		Name:       "度胸",
		RankLabels: []string{"なくもない", "男らしい", "筋金入り", "大胆不敵", "ライオンハート"},
		Thresholds: []int{0, 11, 29, 57, 113},
	},
	{
		ID:         "proficiency",
		Name:       "器用さ",
		RankLabels: []string{"ぎこちない", "そこそこ", "職人級", "凄腕", "超魔術"},
		Thresholds: []int{0, 12, 34, 60, 87},
	},
	{
		ID:         "kindness",
		Name:       "優しさ",
		RankLabels: []string{"控え目", "聞き上手", "人情家", "駆け込み寺", "慈母神"},
		Thresholds: []int{0, 14, 44, 91, 136},
	},
	{
		ID:         "charm",
		Name:       "魅力",
		RankLabels: []string{"人並み", "気になる存在", "注目株", "カリスマ", "魔性の男"},
		Thresholds: []int{0, 6, 52, 92, 132},
	},
}

var defaultActions = []model.Action{
	{ID: "a1", Name: "読書", Effects: []model.Effect{{StatID: "knowledge", Value: 3}}},
	{ID: "a2", Name: "授業を聞く", Effects: []model.Effect{{StatID: "knowledge", Value: 2}}},
	{ID: "a3", Name: "テスト勉強", Effects: []model.Effect{{StatID: "knowledge", Value: 5}}},
	{ID: "a4", Name: "ビッグバンバーガー", Effects: []model.Effect{{StatID: "guts", Value: 3}}},
	{ID: "a5", Name: "ホラー映画", Effects: []model.Effect{{StatID: "guts", Value: 3}}},
	{ID: "a6", Name: "バッティングセンター", Effects: []model.Effect{{StatID: "proficiency", Value: 2}}},
	{ID: "a7", Name: "コーヒーを淹れる", Effects: []model.Effect{{StatID: "proficiency", Value: 2}, {StatID: "charm", Value: 1}}},
	{ID: "a8", Name: "花屋でバイト", Effects: []model.Effect{{StatID: "kindness", Value: 2}, {StatID: "charm", Value: 1}}},
	{ID: "a9", Name: "銭湯", Effects: []model.Effect{{StatID: "charm", Value: 3}}},
	{ID: "a10", Name: "DVDを見る", Effects: []model.Effect{{StatID: "kindness", Value: 3}}},
	{ID: "a11", Name: "瞑想", Effects: []model.Effect{{StatID: "guts", Value: 2}}},
	{ID: "a12", Name: "ゲームセンター", Effects: []model.Effect{{StatID: "proficiency", Value: 3}}},
}

// DefaultStats returns a fresh copy of the seeded stat set.
func DefaultStats() []model.Stat {
	out := make([]model.Stat, len(defaultStats))
	for i, s := range defaultStats {
		out[i] = cloneStat(s)
	}
	return out
}

// DefaultStat looks up the seeded definition for id.
func DefaultStat(id string) (model.Stat, bool) {
	for _, s := range defaultStats {
		if s.ID == id {
			return cloneStat(s), true
		}
	}
	return model.Stat{}, false
}

// DefaultActions returns a fresh copy of the seeded action templates.
func DefaultActions() []model.Action {
	out := make([]model.Action, len(defaultActions))
	for i, a := range defaultActions {
		a.Effects = append([]model.Effect(nil), a.Effects...)
		out[i] = a
	}
	return out
}

// DefaultSettings returns the settings written on first run.
func DefaultSettings() model.Settings {
	return model.Settings{DarkMode: true}
}

func cloneStat(s model.Stat) model.Stat {
	s.RankLabels = append([]string(nil), s.RankLabels...)
	s.Thresholds = append([]int(nil), s.Thresholds...)
	return s
}
