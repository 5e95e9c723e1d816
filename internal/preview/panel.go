package preview

import (
	"fmt"

	"github.com/fadilmartias/cv-dashboard/internal/model"
)

type State string

const (
	StateClosed State = "closed"
	StateOpen   State = "open"
)

type ClickTarget string

const (
	ClickOverlay ClickTarget = "overlay"
	ClickContent ClickTarget = "content"
)

// Panel is either closed or open on a cursor into a list snapshot.
// The zero value is a closed panel.
type Panel struct {
	open   bool
	cursor int
	items  []model.PanelItem
}

// Open shows items[index]. The list is copied so later edits to the caller's
// slice don't move the panel.
func (p *Panel) Open(items []model.PanelItem, index int) error {
	if index < 0 || index >= len(items) {
		return fmt.Errorf("index %d out of range for %d items", index, len(items))
	}
	p.items = append([]model.PanelItem(nil), items...)
	p.cursor = index
	p.open = true
	return nil
}

func (p *Panel) Close() {
	p.open = false
	p.items = nil
	p.cursor = 0
}

// Click closes the panel when the overlay is hit. Clicks inside the content
// area never reach the overlay.
func (p *Panel) Click(target ClickTarget) {
	if target == ClickOverlay {
		p.Close()
	}
}

func (p *Panel) Next() {
	if p.CanNext() {
		p.cursor++
	}
}

func (p *Panel) Prev() {
	if p.CanPrev() {
		p.cursor--
	}
}

func (p Panel) CanNext() bool { return p.open && p.cursor < len(p.items)-1 }

func (p Panel) CanPrev() bool { return p.open && p.cursor > 0 }

func (p Panel) State() State {
	if p.open {
		return StateOpen
	}
	return StateClosed
}

func (p Panel) IsOpen() bool { return p.open }

func (p Panel) Cursor() int { return p.cursor }

func (p Panel) Len() int { return len(p.items) }

// Current returns the item under the cursor; ok is false when closed.
func (p Panel) Current() (model.PanelItem, bool) {
	if !p.open {
		return model.PanelItem{}, false
	}
	return p.items[p.cursor], true
}

// Label renders the position as "i / n".
func (p Panel) Label() string {
	if !p.open {
		return ""
	}
	return fmt.Sprintf("%d / %d", p.cursor+1, len(p.items))
}
