package command

// Separator is a divider between actions in a [Group].
type Separator struct{}

func (Separator) Title() string { return "" }

func (Separator) Icon() (string, bool) { return "", false }

func (Separator) IsEnabled(_ []string) bool { return true }

func (Separator) Flags() Flags { return FlagIsSeparator }
