package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// MenuItem is one entry of a Menu. Key, when set, runs the item
// directly from anywhere in the menu.
type MenuItem struct {
	Label    string
	Key      string
	Action   func() tea.Cmd
	Disabled bool
}

func (it MenuItem) run() tea.Cmd {
	if it.Disabled || it.Action == nil {
		return nil
	}
	return it.Action()
}

// Menu is a vertical list of buttons. Disabled items are drawn but
// never selected.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu selects the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.Selected = m.next(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// Update moves the selection with up/down (or k/j) and runs the selected
// item on Enter or a matching hotkey.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		m.Selected = m.next(-1)
		return m, nil
	case "down", "j":
		m.Selected = m.next(1)
		return m, nil
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			return m, m.Items[m.Selected].run()
		}
		return m, nil
	}

	for i, it := range m.Items {
		if it.Key != "" && !it.Disabled && strings.EqualFold(it.Key, key) {
			m.Selected = i
			return m, it.run()
		}
	}
	return m, nil
}

// next is the nearest enabled index from Selected in direction step, or
// Selected itself at either end.
func (m Menu) next(step int) int {
	for i := m.Selected + step; i >= 0 && i < len(m.Items); i += step {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return m.Selected
}

func (m Menu) Labels() []string {
	labels := make([]string, 0, len(m.Items))
	for _, it := range m.Items {
		labels = append(labels, it.Label)
	}
	return labels
}

// View stacks the buttons at width w.
func (m Menu) View(w int) string {
	rows := make([]string, len(m.Items))
	for i, it := range m.Items {
		rows[i] = MenuButton(it.Label, i == m.Selected, w)
	}
	return strings.Join(rows, "\n")
}
