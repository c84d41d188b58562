package viz

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the viewer's own keys. Target keys are resolved by the
// dispatcher; Look and Back exist here only so help can list them.
type keyMap struct {
	Look  key.Binding
	Back  key.Binding
	Cycle key.Binding
	Click key.Binding
	Theme key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Look:  key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "look at target")),
		Back:  key.NewBinding(key.WithKeys("0", "esc", "backspace"), key.WithHelp("esc/0", "overview")),
		Cycle: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "cycle targets")),
		Click: key.NewBinding(key.WithKeys("mouse-left"), key.WithHelp("click", "look at marker")),
		Theme: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "cycle themes")),
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Look, k.Back, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Look, k.Back, k.Cycle, k.Click},
		{k.Theme, k.Help, k.Quit},
	}
}
