package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Analyze    key.Binding
	Random     key.Binding
	Clear      key.Binding
	Retry      key.Binding
	Focus      key.Binding
	Blur       key.Binding
	MoreTopics key.Binding
	PickTopic  key.Binding
	Settings   key.Binding
	Debug      key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Analyze:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "analyze")),
		Random:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "random")),
		Clear:      key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
		Retry:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		Focus:      key.NewBinding(key.WithKeys("/", "i"), key.WithHelp("/", "type topic")),
		Blur:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave input")),
		MoreTopics: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "more topics")),
		PickTopic:  key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "pick topic")),
		Settings:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "settings")),
		Debug:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "debug")),
		ScrollUp:   key.NewBinding(key.WithKeys("up", "k", "pgup"), key.WithHelp("↑/k", "scroll")),
		ScrollDown: key.NewBinding(key.WithKeys("down", "j", "pgdown"), key.WithHelp("↓/j", "scroll")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Analyze, k.Random, k.Clear, k.Retry, k.Focus, k.PickTopic, k.MoreTopics, k.Settings, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Analyze, k.Random, k.Clear, k.Retry},
		{k.Focus, k.Blur, k.PickTopic, k.MoreTopics},
		{k.ScrollUp, k.ScrollDown, k.Settings, k.Debug, k.Quit},
	}
}
