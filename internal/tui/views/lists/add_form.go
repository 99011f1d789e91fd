package lists

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/larder/larder/internal/models"
	"github.com/larder/larder/internal/services/inventory"
	"github.com/larder/larder/internal/tui/components"
	"github.com/larder/larder/internal/util"
)

var listOptions = []string{models.ListInventory.String(), models.ListShopping.String()}

// AddForm collects a new list entry.
type AddForm struct {
	form *components.Form

	name    *components.Input
	list    *components.Select
	qty     *components.Input
	measure *components.Input
	expiry  *components.Input
}

// NewAddForm creates a form that adds to tab unless the user picks the
// other list.
func NewAddForm(tab models.ListType, p components.Palette) *AddForm {
	f := &AddForm{
		name:    components.NewInput("Name").SetRequired(true).SetWidth(30).SetMaxLength(80),
		list:    components.NewSelect("List", listOptions),
		qty:     components.NewInput("Quantity").SetRequired(true).SetWidth(6).SetMaxLength(6).SetValue("1"),
		measure: components.NewInput("Measure").SetWidth(8).SetMaxLength(12).SetPlaceholder("pcs"),
		expiry:  components.NewInput("Expiry").SetWidth(12).SetMaxLength(30).SetPlaceholder(util.DateFormat),
	}
	if tab == models.ListShopping {
		f.list.SetSelected(1)
	}

	f.name.SetPalette(p)
	f.list.SetPalette(p)
	f.qty.SetPalette(p)
	f.measure.SetPalette(p)
	f.expiry.SetPalette(p)

	f.form = components.NewForm("ADD ENTRY").SetPalette(p)
	f.form.AddField(f.name).
		AddField(f.list).
		AddField(f.qty).
		AddField(f.measure).
		AddField(f.expiry)
	return f
}

// HandleKey passes a key to the form.
func (f *AddForm) HandleKey(key string) {
	f.form.HandleKey(key)
}

// IsSubmitted reports whether the user asked to save.
func (f *AddForm) IsSubmitted() bool {
	return f.form.IsSubmitted()
}

// IsCancelled reports whether the user backed out.
func (f *AddForm) IsCancelled() bool {
	return f.form.IsCancelled()
}

// Reject keeps the form open and shows why the entry was not saved.
func (f *AddForm) Reject(err error) {
	f.form.Reject(err.Error())
}

// GetData validates the fields and returns the entry to create.
func (f *AddForm) GetData() (inventory.CreateEntryInput, error) {
	var errs []error
	if !f.name.Validate() {
		errs = append(errs, errors.New("name is required"))
	}

	list, err := models.ParseListType(f.list.Value())
	if err != nil {
		errs = append(errs, err)
	}

	qty, err := strconv.Atoi(strings.TrimSpace(f.qty.Value()))
	if err != nil || qty <= 0 {
		f.qty.SetError("Whole number")
		errs = append(errs, fmt.Errorf("quantity %q must be a positive whole number", f.qty.Value()))
	} else {
		f.qty.SetError("")
	}

	expiry := strings.TrimSpace(f.expiry.Value())
	if expiry != "" {
		if _, err := util.ParseExpiry(expiry); err != nil {
			f.expiry.SetError(util.DateFormat)
			errs = append(errs, err)
		} else {
			f.expiry.SetError("")
		}
	}

	if len(errs) > 0 {
		return inventory.CreateEntryInput{}, errors.Join(errs...)
	}

	return inventory.CreateEntryInput{
		Name: strings.TrimSpace(f.name.Value()),
		Type: list,
		Units: []models.Unit{{
			Quantity: qty,
			Measure:  strings.TrimSpace(f.measure.Value()),
			Expiry:   expiry,
		}},
	}, nil
}

// Render renders the form.
func (f *AddForm) Render() string {
	return f.form.Render()
}
