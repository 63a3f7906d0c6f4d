package orderbook

import (
	"sort"

	orderbookv1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/orderbook/v1"
)

// ladder keeps price levels sorted best-first: descending prices for the
// bid side, ascending for the ask side. Lookups go through the price map,
// ordered traversal through the sorted slice.
type ladder struct {
	descending bool
	levels     []*Level
	byPrice    map[orderbookv1.Price]*Level
}

func newLadder(descending bool) *ladder {
	return &ladder{
		descending: descending,
		byPrice:    make(map[orderbookv1.Price]*Level),
	}
}

func (l *ladder) empty() bool {
	return len(l.levels) == 0
}

func (l *ladder) size() int {
	return len(l.levels)
}

// best returns the front level, or nil when the ladder is empty.
func (l *ladder) best() *Level {
	if len(l.levels) == 0 {
		return nil
	}
	return l.levels[0]
}

func (l *ladder) get(price orderbookv1.Price) *Level {
	return l.byPrice[price]
}

// insertionIndex finds the position price sorts to, best-first.
func (l *ladder) insertionIndex(price orderbookv1.Price) int {
	return sort.Search(len(l.levels), func(i int) bool {
		if l.descending {
			return l.levels[i].price <= price
		}
		return l.levels[i].price >= price
	})
}

// upsert returns the level at price, creating and inserting it in sorted
// position when absent.
func (l *ladder) upsert(price orderbookv1.Price) *Level {
	if level, ok := l.byPrice[price]; ok {
		return level
	}

	level := NewLevel(price)
	idx := l.insertionIndex(price)
	l.levels = append(l.levels, nil)
	copy(l.levels[idx+1:], l.levels[idx:])
	l.levels[idx] = level
	l.byPrice[price] = level
	return level
}

// remove drops the level at price, if present.
func (l *ladder) remove(price orderbookv1.Price) {
	if _, ok := l.byPrice[price]; !ok {
		return
	}
	delete(l.byPrice, price)

	idx := l.insertionIndex(price)
	if idx < len(l.levels) && l.levels[idx].price == price {
		l.levels = append(l.levels[:idx], l.levels[idx+1:]...)
	}
}

// each visits levels best-first until the visitor returns false.
func (l *ladder) each(visit func(*Level) bool) {
	for _, level := range l.levels {
		if !visit(level) {
			return
		}
	}
}
