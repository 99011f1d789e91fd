package components

import (
	"strings"
	"testing"
)

func TestInput_RequiredValidation(t *testing.T) {
	input := NewInput("Name").SetRequired(true)

	if input.Validate() {
		t.Error("expected empty required field to fail")
	}
	if !strings.Contains(input.Render(), "Required") {
		t.Error("expected error in render")
	}

	input.SetValue("   ")
	if input.Validate() {
		t.Error("expected whitespace-only required field to fail")
	}

	input.SetValue("Milk")
	if !input.Validate() {
		t.Error("expected validation to pass with value set")
	}
	if strings.Contains(input.Render(), "Required") {
		t.Error("error should clear after a passing validation")
	}
}

func TestInput_HandleKey(t *testing.T) {
	input := NewInput("Name")

	if input.HandleKey("A") {
		t.Error("unfocused input should ignore keys")
	}

	input.Focus(true)
	for _, k := range []string{"b", "r", "e", "d"} {
		input.HandleKey(k)
	}
	if input.Value() != "bred" {
		t.Fatalf("Value() = %q, want bred", input.Value())
	}

	input.HandleKey("left")
	input.HandleKey("a")
	if input.Value() != "bread" {
		t.Errorf("insert at cursor: got %q", input.Value())
	}

	input.HandleKey("backspace")
	input.HandleKey("home")
	input.HandleKey("delete")
	if input.Value() != "red" {
		t.Errorf("after backspace and delete: got %q", input.Value())
	}

	input.HandleKey("end")
	if changed := input.HandleKey("ctrl+x"); changed {
		t.Error("multi-rune key names should not be inserted")
	}
	if input.Value() != "red" {
		t.Errorf("got %q", input.Value())
	}
}

func TestInput_MultibyteRunes(t *testing.T) {
	input := NewInput("Name").SetValue("café")
	input.Focus(true)

	input.HandleKey("backspace")
	if input.Value() != "caf" {
		t.Errorf("backspace should remove one rune, got %q", input.Value())
	}
}

func TestInput_MaxLength(t *testing.T) {
	input := NewInput("Qty").SetMaxLength(2)
	input.Focus(true)

	input.HandleKey("1")
	input.HandleKey("2")
	if input.HandleKey("3") {
		t.Error("expected key past max length to be rejected")
	}
	if input.Value() != "12" {
		t.Errorf("Value() = %q, want 12", input.Value())
	}
}

func TestInput_View(t *testing.T) {
	input := NewInput("Expiry").SetPlaceholder("YYYY-MM-DD").SetWidth(12)

	if !strings.Contains(input.View(), "YYYY-MM-DD") {
		t.Error("expected placeholder when unfocused and empty")
	}
	if strings.Contains(input.View(), "Expiry") {
		t.Error("View should not include the label")
	}

	input.Focus(true)
	input.HandleKey("2")
	if !strings.Contains(input.View(), "2_") {
		t.Errorf("expected cursor after value, got %q", input.View())
	}
}

func TestSelect(t *testing.T) {
	sel := NewSelect("List", []string{"inventory", "shopping"})

	if sel.Value() != "inventory" {
		t.Errorf("Value() = %q", sel.Value())
	}
	if sel.HandleKey("right") {
		t.Error("unfocused select should ignore keys")
	}

	sel.Focus(true)
	if !sel.HandleKey("right") || sel.Value() != "shopping" {
		t.Errorf("expected shopping, got %q", sel.Value())
	}
	if sel.HandleKey("right") {
		t.Error("should not move past the last option")
	}
	sel.HandleKey("left")
	if sel.Value() != "inventory" {
		t.Errorf("Value() = %q", sel.Value())
	}

	sel.SetSelected(9)
	if sel.Value() != "inventory" {
		t.Error("out of range SetSelected should be ignored")
	}

	out := sel.Render()
	if !strings.Contains(out, "[inventory]") || !strings.Contains(out, "shopping") {
		t.Errorf("unexpected render %q", out)
	}
}

func TestForm_FocusAndSubmit(t *testing.T) {
	form := NewForm("Add entry")
	name := NewInput("Name")
	qty := NewInput("Qty")
	form.AddField(name).AddField(qty)

	if !name.IsFocused() {
		t.Fatal("first field should start focused")
	}

	form.HandleKey("x")
	form.HandleKey("tab")
	if !qty.IsFocused() || name.IsFocused() {
		t.Error("tab should move focus to the second field")
	}
	form.HandleKey("tab")
	if !name.IsFocused() {
		t.Error("focus should wrap to the first field")
	}
	form.HandleKey("shift+tab")
	if !qty.IsFocused() {
		t.Error("shift+tab should wrap backwards")
	}
	if name.Value() != "x" {
		t.Errorf("keys should reach the focused field, got %q", name.Value())
	}

	form.HandleKey("enter")
	if !form.IsSubmitted() {
		t.Error("enter on the last field should submit")
	}

	form.Reject("quantity must be a number")
	if form.IsSubmitted() {
		t.Error("Reject should reopen the form")
	}
	if !strings.Contains(form.Render(), "quantity must be a number") {
		t.Error("expected rejection message in render")
	}
}

func TestForm_Cancel(t *testing.T) {
	form := NewForm("Add entry")
	form.AddField(NewInput("Name"))

	form.HandleKey("esc")
	if !form.IsCancelled() {
		t.Error("esc should cancel")
	}
}
