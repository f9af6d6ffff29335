package pager

// Command is a navigation request applied to a Session.
type Command string

const (
	ScrollUp    Command = "scroll-up"
	ScrollDown  Command = "scroll-down"
	PrevPage    Command = "prev-page"
	NextPage    Command = "next-page"
	PrevChapter Command = "prev-chapter"
	NextChapter Command = "next-chapter"
	Quit        Command = "quit"
)

// Commands lists every command in menu order.
var Commands = []Command{ScrollUp, ScrollDown, PrevPage, NextPage, PrevChapter, NextChapter, Quit}

var labels = map[Command]string{
	ScrollUp:    "Scroll up",
	ScrollDown:  "Scroll down",
	PrevPage:    "Prev page",
	NextPage:    "Next page",
	PrevChapter: "Prev chapter",
	NextChapter: "Next chapter",
	Quit:        "Quit",
}

// Label is the menu text for c.
func (c Command) Label() string {
	if l, ok := labels[c]; ok {
		return l
	}
	return string(c)
}
