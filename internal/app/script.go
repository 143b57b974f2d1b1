package app

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// command is one script verb.
type command struct {
	usage string
	min   int
	max   int  // -1 for no limit
	raw   bool // the rest of the line is one escaped argument
	doc   bool // needs an active document
	run   func(app *Application, c *call) error
}

// call is a parsed command line.
type call struct {
	doc  *Document
	args []string
	out  io.Writer
}

var rawEscapes = strings.NewReplacer(`\n`, "\n", `\t`, "\t", `\s`, " ", `\\`, `\`)

// commands maps script verbs to their implementations. Edit verbs that
// leave the document unchanged are not errors.
var commands map[string]command

func init() {
	commands = map[string]command{
		// editing
		"insert":     {usage: "insert <text>", min: 1, max: 1, raw: true, doc: true, run: edit(func(c *call) { c.doc.Engine.InsertText(c.args[0]) })},
		"break":      {usage: "break", doc: true, run: edit(func(c *call) { c.doc.Engine.InsertBreak() })},
		"paste-text": {usage: "paste-text <text>", min: 1, max: 1, raw: true, doc: true, run: edit(func(c *call) { c.doc.Engine.PasteText(c.args[0]) })},
		"delete":     {usage: "delete", doc: true, run: edit(func(c *call) { c.doc.Engine.Delete() })},
		"cut":        {usage: "cut", doc: true, run: edit(func(c *call) { c.doc.Engine.Cut() })},
		"copy":       {usage: "copy", doc: true, run: edit(func(c *call) { c.doc.Engine.Copy() })},
		"paste":      {usage: "paste", doc: true, run: edit(func(c *call) { c.doc.Engine.Paste() })},
		"undo":       {usage: "undo", doc: true, run: edit(func(c *call) { c.doc.Engine.Undo() })},
		"redo":       {usage: "redo", doc: true, run: edit(func(c *call) { c.doc.Engine.Redo() })},
		"cutline":    {usage: "cutline", doc: true, run: edit(func(c *call) { c.doc.Engine.CutLine() })},
		"unlink":     {usage: "unlink", doc: true, run: edit(func(c *call) { c.doc.Engine.RemoveLink() })},
		"deln":       {usage: "deln <n> [back]", min: 1, max: 2, doc: true, run: runDeleteN},
		"link":       {usage: "link <url> [target]", min: 1, max: 2, doc: true, run: runLink},
		"begin":      {usage: "begin <name>", min: 1, max: 1, doc: true, run: edit(func(c *call) { c.doc.Engine.BeginGroup(c.args[0]) })},
		"end":        {usage: "end", doc: true, run: edit(func(c *call) { c.doc.Engine.EndGroup() })},

		// cursor and selection
		"jump":       {usage: "jump <offset>", min: 1, max: 1, doc: true, run: runJump},
		"select":     {usage: "select <from> <to>", min: 2, max: 2, doc: true, run: runSelect},
		"select-all": {usage: "select-all", doc: true, run: edit(func(c *call) { c.doc.Engine.SelectAll() })},
		"left":       {usage: "left [n] [extend]", max: 2, doc: true, run: runMove(false)},
		"right":      {usage: "right [n] [extend]", max: 2, doc: true, run: runMove(true)},
		"mark":       {usage: "mark", doc: true, run: edit(func(c *call) { c.doc.Engine.SetMark() })},
		"unmark":     {usage: "unmark", doc: true, run: edit(func(c *call) { c.doc.Engine.ClearSelection() })},

		// documents
		"new":    {usage: "new [text]", max: 1, raw: true, run: runNew},
		"open":   {usage: "open <path>", min: 1, max: 1, run: runOpen},
		"save":   {usage: "save", doc: true, run: func(_ *Application, c *call) error { return c.doc.Save() }},
		"switch": {usage: "switch <name>", min: 1, max: 1, run: runSwitch},
		"next":   {usage: "next", run: func(app *Application, _ *call) error { app.documents.Next(); return nil }},
		"close":  {usage: "close [name]", max: 1, doc: true, run: runClose},
		"docs":   {usage: "docs", run: runDocs},
		"quit":   {usage: "quit", run: func(*Application, *call) error { return ErrQuit }},

		// output
		"print":     {usage: "print", doc: true, run: func(_ *Application, c *call) error { return writeln(c.out, c.doc.Content()) }},
		"dump":      {usage: "dump", doc: true, run: func(_ *Application, c *call) error { return writeln(c.out, c.doc.Engine.Dump()) }},
		"cursor":    {usage: "cursor", doc: true, run: runCursor},
		"selection": {usage: "selection", doc: true, run: func(_ *Application, c *call) error { return writeln(c.out, strconv.Quote(c.doc.Engine.SelectedText())) }},
		"clipboard": {usage: "clipboard", run: func(app *Application, c *call) error { return writeln(c.out, strconv.Quote(app.clip.Text())) }},
		"history":   {usage: "history", doc: true, run: runHistory},
		"markers":   {usage: "markers", doc: true, run: runMarkers},
		"suggest":   {usage: "suggest <word>", min: 1, max: 1, doc: true, run: runSuggest},
		"help":      {usage: "help", run: runHelp},
	}
}

// exec parses and runs one line. The caller holds app.mu.
func (app *Application) exec(line string, out io.Writer) error {
	name, rest, _ := strings.Cut(line, " ")
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrUnknownCommand)
	}

	c := &call{out: out}
	rest = strings.TrimSpace(rest)
	switch {
	case cmd.raw && rest != "":
		c.args = []string{rawEscapes.Replace(rest)}
	case !cmd.raw:
		c.args = strings.Fields(rest)
	}
	if len(c.args) < cmd.min || (cmd.max >= 0 && len(c.args) > cmd.max) {
		return fmt.Errorf("usage: %s: %w", cmd.usage, ErrUsage)
	}
	if cmd.doc {
		if c.doc = app.documents.Active(); c.doc == nil {
			return ErrNoActiveDocument
		}
	}
	return cmd.run(app, c)
}

// edit adapts an engine verb to a command. A verb that does nothing is
// not an error.
func edit(fn func(c *call)) func(*Application, *call) error {
	return func(_ *Application, c *call) error {
		fn(c)
		return nil
	}
}

func writeln(w io.Writer, s string) error {
	_, err := fmt.Fprintln(w, s)
	return err
}

func intArg(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number: %w", s, ErrUsage)
	}
	return n, nil
}

func runDeleteN(_ *Application, c *call) error {
	n, err := intArg(c.args[0])
	if err != nil {
		return err
	}
	forward := true
	if len(c.args) == 2 {
		if c.args[1] != "back" {
			return fmt.Errorf("usage: deln <n> [back]: %w", ErrUsage)
		}
		forward = false
	}
	c.doc.Engine.DeleteN(n, forward)
	return nil
}

func runLink(_ *Application, c *call) error {
	target := ""
	if len(c.args) == 2 {
		target = c.args[1]
	}
	c.doc.Engine.InsertLink(c.args[0], target)
	return nil
}

func runJump(_ *Application, c *call) error {
	n, err := intArg(c.args[0])
	if err != nil {
		return err
	}
	c.doc.Engine.JumpToOffset(n)
	return nil
}

func runSelect(_ *Application, c *call) error {
	from, err := intArg(c.args[0])
	if err != nil {
		return err
	}
	to, err := intArg(c.args[1])
	if err != nil {
		return err
	}
	c.doc.Engine.SelectRange(from, to)
	return nil
}

func runMove(right bool) func(*Application, *call) error {
	return func(_ *Application, c *call) error {
		n, extend := 1, false
		for _, a := range c.args {
			if a == "extend" {
				extend = true
				continue
			}
			v, err := intArg(a)
			if err != nil {
				return err
			}
			n = v
		}
		if right {
			c.doc.Engine.MoveRight(n, extend)
		} else {
			c.doc.Engine.MoveLeft(n, extend)
		}
		return nil
	}
}

func runNew(app *Application, c *call) error {
	text := ""
	if len(c.args) == 1 {
		text = c.args[0]
	}
	app.documents.CreateScratch(text)
	return nil
}

func runOpen(app *Application, c *call) error {
	_, err := app.documents.Open(c.args[0])
	return err
}

func runSwitch(app *Application, c *call) error {
	if err := app.documents.SetActiveByKey(c.args[0]); err != nil {
		return NewOperationError("switch", c.args[0], err)
	}
	return nil
}

func runClose(app *Application, c *call) error {
	key := c.doc.Path
	if key == "" {
		key = c.doc.Name
	}
	if len(c.args) == 1 {
		key = c.args[0]
	}
	if err := app.documents.Close(key); err != nil {
		return NewOperationError("close", key, err)
	}
	return nil
}

func runDocs(app *Application, c *call) error {
	active := app.documents.Active()
	for _, d := range app.documents.All() {
		flag := " "
		if d == active {
			flag = "*"
		}
		if _, err := fmt.Fprintf(c.out, "%s %s %d\n", flag, d.Name, d.Engine.Len()); err != nil {
			return err
		}
	}
	return nil
}

func runCursor(_ *Application, c *call) error {
	e := c.doc.Engine
	if e.HasSelection() {
		_, err := fmt.Fprintf(c.out, "cursor %d mark %d\n", e.CursorOffset(), markOffset(c.doc))
		return err
	}
	_, err := fmt.Fprintf(c.out, "cursor %d\n", e.CursorOffset())
	return err
}

func markOffset(d *Document) int {
	m := d.Engine.Mark()
	off, err := d.Engine.Tree().Offset(m.Node, m.Offset)
	if err != nil {
		return -1
	}
	return off
}

func runHistory(_ *Application, c *call) error {
	h := c.doc.Engine.History()
	if _, err := fmt.Fprintf(c.out, "undo %d redo %d\n", h.UndoCount(), h.RedoCount()); err != nil {
		return err
	}
	for _, inf := range h.UndoInfo() {
		if _, err := fmt.Fprintf(c.out, "  %s\n", inf.Description); err != nil {
			return err
		}
	}
	return nil
}

func runMarkers(_ *Application, c *call) error {
	if c.doc.Spell == nil {
		return nil
	}
	for _, m := range c.doc.Spell.Markers() {
		if _, err := fmt.Fprintf(c.out, "%d-%d %s\n", m.From, m.To, m.Word); err != nil {
			return err
		}
	}
	return nil
}

func runSuggest(_ *Application, c *call) error {
	if c.doc.Spell == nil {
		return nil
	}
	return writeln(c.out, strings.Join(c.doc.Spell.Suggest(c.args[0]), " "))
}

func runHelp(_ *Application, c *call) error {
	usages := make([]string, 0, len(commands))
	for _, cmd := range commands {
		usages = append(usages, cmd.usage)
	}
	sort.Strings(usages)
	for _, u := range usages {
		if err := writeln(c.out, u); err != nil {
			return err
		}
	}
	return nil
}
