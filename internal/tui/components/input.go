package components

import (
	"fmt"
	"strings"
)

// Input is a single line text input.
type Input struct {
	label       string
	value       []rune
	placeholder string
	width       int
	focused     bool
	cursorPos   int
	maxLength   int
	required    bool
	err         string
	palette     Palette
}

// NewInput creates a new input field.
func NewInput(label string) *Input {
	return &Input{
		label:     label,
		width:     20,
		maxLength: 100,
		palette:   GardenPalette,
	}
}

// SetValue sets the input value and moves the cursor to its end.
func (i *Input) SetValue(v string) *Input {
	i.value = []rune(v)
	i.cursorPos = len(i.value)
	return i
}

// SetPlaceholder sets the placeholder text.
func (i *Input) SetPlaceholder(p string) *Input {
	i.placeholder = p
	return i
}

// SetWidth sets the input width.
func (i *Input) SetWidth(w int) *Input {
	i.width = w
	return i
}

// SetMaxLength sets the maximum input length.
func (i *Input) SetMaxLength(m int) *Input {
	i.maxLength = m
	return i
}

// SetRequired marks the field as required.
func (i *Input) SetRequired(r bool) *Input {
	i.required = r
	return i
}

// SetError sets an error message.
func (i *Input) SetError(e string) *Input {
	i.err = e
	return i
}

// SetPalette restyles the input.
func (i *Input) SetPalette(p Palette) *Input {
	i.palette = p
	return i
}

// Focus sets the focus state.
func (i *Input) Focus(focused bool) {
	i.focused = focused
	i.cursorPos = min(i.cursorPos, len(i.value))
}

// IsFocused returns the focus state.
func (i *Input) IsFocused() bool {
	return i.focused
}

// Value returns the current value.
func (i *Input) Value() string {
	return string(i.value)
}

// HandleKey handles a key press. It reports whether the value changed.
func (i *Input) HandleKey(key string) bool {
	if !i.focused {
		return false
	}

	switch key {
	case "backspace":
		if i.cursorPos > 0 {
			i.value = append(i.value[:i.cursorPos-1], i.value[i.cursorPos:]...)
			i.cursorPos--
			return true
		}
	case "delete":
		if i.cursorPos < len(i.value) {
			i.value = append(i.value[:i.cursorPos], i.value[i.cursorPos+1:]...)
			return true
		}
	case "left":
		i.cursorPos = max(i.cursorPos-1, 0)
	case "right":
		i.cursorPos = min(i.cursorPos+1, len(i.value))
	case "home", "ctrl+a":
		i.cursorPos = 0
	case "end", "ctrl+e":
		i.cursorPos = len(i.value)
	default:
		r := []rune(key)
		if len(r) == 1 && len(i.value) < i.maxLength {
			i.value = append(i.value[:i.cursorPos], append(r, i.value[i.cursorPos:]...)...)
			i.cursorPos++
			return true
		}
	}
	return false
}

// Validate checks required fields and records the error.
func (i *Input) Validate() bool {
	if i.required && strings.TrimSpace(string(i.value)) == "" {
		i.err = "Required"
		return false
	}
	i.err = ""
	return true
}

// View renders the value alone, with a cursor when focused.
func (i *Input) View() string {
	p := i.palette
	var display string
	shown := len(i.value)

	switch {
	case len(i.value) == 0 && i.placeholder != "" && !i.focused:
		display = p.style(p.Muted).Render(i.placeholder)
		shown = len([]rune(i.placeholder))
	case i.focused:
		before := string(i.value[:i.cursorPos])
		after := string(i.value[i.cursorPos:])
		display = p.style(p.Accent).Render(before + "_" + after)
		shown++
	default:
		display = p.style(p.Primary).Render(string(i.value))
	}

	if shown < i.width {
		display += strings.Repeat(" ", i.width-shown)
	}
	return display
}

// Render renders the labelled input field.
func (i *Input) Render() string {
	p := i.palette
	label := i.label
	if i.required {
		label += "*"
	}
	label += ":"

	result := p.style(p.Secondary).Width(16).Render(label) + " " + i.View()
	if i.err != "" {
		result += " " + p.style(p.Error).Render(i.err)
	}
	return result
}

// Select picks one of a fixed set of options.
type Select struct {
	label    string
	options  []string
	selected int
	focused  bool
	palette  Palette
}

// NewSelect creates a new select input.
func NewSelect(label string, options []string) *Select {
	return &Select{
		label:   label,
		options: options,
		palette: GardenPalette,
	}
}

// SetSelected sets the selected index.
func (s *Select) SetSelected(idx int) *Select {
	if idx >= 0 && idx < len(s.options) {
		s.selected = idx
	}
	return s
}

// SetPalette restyles the select.
func (s *Select) SetPalette(p Palette) *Select {
	s.palette = p
	return s
}

// Focus sets the focus state.
func (s *Select) Focus(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state.
func (s *Select) IsFocused() bool {
	return s.focused
}

// Value returns the selected value.
func (s *Select) Value() string {
	if s.selected >= 0 && s.selected < len(s.options) {
		return s.options[s.selected]
	}
	return ""
}

// HandleKey handles a key press. It reports whether the selection changed.
func (s *Select) HandleKey(key string) bool {
	if !s.focused {
		return false
	}
	prev := s.selected
	switch key {
	case "left", "h":
		s.selected = max(s.selected-1, 0)
	case "right", "l", " ":
		s.selected = min(s.selected+1, len(s.options)-1)
	}
	return prev != s.selected
}

// Render renders the select.
func (s *Select) Render() string {
	p := s.palette
	opt := p.style(p.Secondary)
	sel := p.style(p.Primary).Bold(true)

	var b strings.Builder
	b.WriteString(opt.Width(16).Render(s.label + ":"))
	b.WriteString(" ")

	for i, o := range s.options {
		if i > 0 {
			b.WriteString(" ")
		}
		switch {
		case i == s.selected && s.focused:
			b.WriteString(sel.Render("[" + o + "]"))
		case i == s.selected:
			b.WriteString(sel.Render("(" + o + ")"))
		default:
			b.WriteString(opt.Render(" " + o + " "))
		}
	}

	return b.String()
}

// FormField is a focusable form control.
type FormField interface {
	Focus(bool)
	IsFocused() bool
	HandleKey(string) bool
	Render() string
}

var (
	_ FormField = (*Input)(nil)
	_ FormField = (*Select)(nil)
)

// Form is a vertical list of fields with focus cycling.
type Form struct {
	title      string
	fields     []FormField
	focusIndex int
	submitted  bool
	cancelled  bool
	err        string
	palette    Palette
}

// NewForm creates a new form.
func NewForm(title string) *Form {
	return &Form{title: title, palette: GardenPalette}
}

// SetPalette restyles the form frame.
func (f *Form) SetPalette(p Palette) *Form {
	f.palette = p
	return f
}

// AddField adds a field to the form. The first field gets focus.
func (f *Form) AddField(field FormField) *Form {
	f.fields = append(f.fields, field)
	if len(f.fields) == 1 {
		field.Focus(true)
	}
	return f
}

// HandleKey handles form navigation and passes other keys to the focused
// field.
func (f *Form) HandleKey(key string) {
	switch key {
	case "tab", "down":
		f.moveFocus(1)
	case "shift+tab", "up":
		f.moveFocus(-1)
	case "ctrl+s":
		f.submitted = true
	case "esc":
		f.cancelled = true
	case "enter":
		if f.focusIndex == len(f.fields)-1 {
			f.submitted = true
		} else {
			f.moveFocus(1)
		}
	default:
		if f.focusIndex < len(f.fields) {
			f.fields[f.focusIndex].HandleKey(key)
		}
	}
}

func (f *Form) moveFocus(delta int) {
	if len(f.fields) == 0 {
		return
	}
	f.fields[f.focusIndex].Focus(false)
	f.focusIndex = (f.focusIndex + delta + len(f.fields)) % len(f.fields)
	f.fields[f.focusIndex].Focus(true)
}

// IsSubmitted returns true if form was submitted.
func (f *Form) IsSubmitted() bool {
	return f.submitted
}

// IsCancelled returns true if form was cancelled.
func (f *Form) IsCancelled() bool {
	return f.cancelled
}

// Reject clears the submitted flag and shows err, keeping the form open.
func (f *Form) Reject(err string) {
	f.submitted = false
	f.err = err
}

// Render renders the form.
func (f *Form) Render() string {
	p := f.palette
	var b strings.Builder

	b.WriteString(p.style(p.Accent).Bold(true).Render(fmt.Sprintf("=== %s ===", f.title)))
	b.WriteString("\n\n")

	for _, field := range f.fields {
		b.WriteString(field.Render())
		b.WriteString("\n")
	}

	if f.err != "" {
		b.WriteString("\n")
		b.WriteString(p.style(p.Error).Render("Error: " + f.err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(p.style(p.Secondary).Render("Tab/Down:Next  Shift+Tab/Up:Prev  Ctrl+S:Save  Esc:Cancel"))

	return b.String()
}
