package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/metcalfc/folio/internal/pager"
)

// KeyMap binds keys to pager commands.
type KeyMap struct {
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	PrevPage    key.Binding
	NextPage    key.Binding
	PrevChapter key.Binding
	NextChapter key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ScrollUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("pgup", "left", "b"),
			key.WithHelp("←/b", "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("pgdown", "right", " ", "f"),
			key.WithHelp("→/space", "next page"),
		),
		PrevChapter: key.NewBinding(
			key.WithKeys("[", "p"),
			key.WithHelp("[", "prev chapter"),
		),
		NextChapter: key.NewBinding(
			key.WithKeys("]", "n"),
			key.WithHelp("]", "next chapter"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "Q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k *KeyMap) bindings() map[pager.Command]*key.Binding {
	return map[pager.Command]*key.Binding{
		pager.ScrollUp:    &k.ScrollUp,
		pager.ScrollDown:  &k.ScrollDown,
		pager.PrevPage:    &k.PrevPage,
		pager.NextPage:    &k.NextPage,
		pager.PrevChapter: &k.PrevChapter,
		pager.NextChapter: &k.NextChapter,
		pager.Quit:        &k.Quit,
	}
}

// command maps a key press to a pager command.
func (k KeyMap) command(msg tea.KeyMsg) (pager.Command, bool) {
	b := k.bindings()
	for _, c := range pager.Commands {
		if key.Matches(msg, *b[c]) {
			return c, true
		}
	}
	return "", false
}

// forSession disables the bindings whose commands are not legal in s so the
// help line only lists what can be done.
func (k KeyMap) forSession(s pager.Session) KeyMap {
	for c, b := range k.bindings() {
		b.SetEnabled(s.Allowed(c))
	}
	return k
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ScrollUp, k.ScrollDown, k.PrevPage, k.NextPage, k.PrevChapter, k.NextChapter, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ScrollUp, k.ScrollDown},
		{k.PrevPage, k.NextPage},
		{k.PrevChapter, k.NextChapter},
		{k.Quit},
	}
}
