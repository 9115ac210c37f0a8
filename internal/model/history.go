package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
)

// EntryKind discriminates the History variants.
type EntryKind string

const (
	KindAction EntryKind = "action"
	KindMoney  EntryKind = "money"
)

// AppliedEffect is an effect that actually changed a stat, resolved by name.
type AppliedEffect struct {
	StatID   string `json:"statId"`
	StatName string `json:"statName"`
	Value    int    `json:"value"`
}

// ActionEntry records one executed action.
type ActionEntry struct {
	ActionID   string          `json:"actionId"`
	ActionName string          `json:"actionName"`
	ActionIcon string          `json:"actionIcon"`
	Effects    []AppliedEffect `json:"effects"`
}

// MoneyEntry records one ledger delta.
type MoneyEntry struct {
	Amount int64 `json:"amount"`
}

// HistoryEntry is one element of the shared log. Exactly one of Action and
// Money is set, matching Kind.
type HistoryEntry struct {
	ID        int64
	Timestamp time.Time
	Kind      EntryKind
	Action    *ActionEntry
	Money     *MoneyEntry
}

// NewActionEntry builds an unstamped action variant.
func NewActionEntry(a ActionEntry) HistoryEntry {
	return HistoryEntry{Kind: KindAction, Action: &a}
}

// NewMoneyEntry builds an unstamped money variant.
func NewMoneyEntry(amount int64) HistoryEntry {
	return HistoryEntry{Kind: KindMoney, Money: &MoneyEntry{Amount: amount}}
}

type wireEntry struct {
	ID        int64     `json:"id"`
	Timestamp stamp     `json:"timestamp"`
	Type      EntryKind `json:"type"`
}

// stamp encodes like time.Time but decodes leniently: RFC 3339 strings,
// epoch milliseconds, or anything else as the zero time.
type stamp struct {
	time.Time
}

func (s *stamp) UnmarshalJSON(data []byte) error {
	v := gjson.ParseBytes(data)
	switch v.Type {
	case gjson.String:
		t, err := time.Parse(time.RFC3339Nano, v.Str)
		if err != nil {
			t = time.Time{}
		}
		s.Time = t
	case gjson.Number:
		s.Time = time.UnixMilli(v.Int()).UTC()
	default:
		s.Time = time.Time{}
	}
	return nil
}

// timestamp falls back to the id, which is minted from the clock in
// milliseconds, when the stored timestamp was unusable.
func (w wireEntry) timestamp() time.Time {
	if w.Timestamp.IsZero() && w.ID > 0 {
		return time.UnixMilli(w.ID).UTC()
	}
	return w.Timestamp.Time
}

type wireActionEntry struct {
	wireEntry
	ActionEntry
}

type wireMoneyEntry struct {
	wireEntry
	MoneyEntry
}

// MarshalJSON writes the flat document shape with an explicit type tag.
func (e HistoryEntry) MarshalJSON() ([]byte, error) {
	head := wireEntry{ID: e.ID, Timestamp: stamp{e.Timestamp}, Type: e.Kind}
	switch e.Kind {
	case KindAction:
		if e.Action == nil {
			return nil, fmt.Errorf("history entry %d: action payload missing", e.ID)
		}
		return json.Marshal(wireActionEntry{wireEntry: head, ActionEntry: *e.Action})
	case KindMoney:
		if e.Money == nil {
			return nil, fmt.Errorf("history entry %d: money payload missing", e.ID)
		}
		return json.Marshal(wireMoneyEntry{wireEntry: head, MoneyEntry: *e.Money})
	default:
		return nil, fmt.Errorf("history entry %d: unknown kind %q", e.ID, e.Kind)
	}
}

// UnmarshalJSON decodes either variant. Documents written without a type
// tag are action entries unless they carry "type":"money".
func (e *HistoryEntry) UnmarshalJSON(data []byte) error {
	kind := EntryKind(gjson.GetBytes(data, "type").String())
	if kind == "" {
		kind = KindAction
	}

	switch kind {
	case KindMoney:
		var w wireMoneyEntry
		if err := json.Unmarshal(data, &w); err != nil {
			return err
		}
		*e = HistoryEntry{ID: w.ID, Timestamp: w.timestamp(), Kind: KindMoney, Money: &w.MoneyEntry}
	case KindAction:
		var w wireActionEntry
		if err := json.Unmarshal(data, &w); err != nil {
			return err
		}
		if w.Effects == nil {
			w.Effects = []AppliedEffect{}
		}
		*e = HistoryEntry{ID: w.ID, Timestamp: w.timestamp(), Kind: KindAction, Action: &w.ActionEntry}
	default:
		return fmt.Errorf("unknown history entry type %q", kind)
	}
	return nil
}
