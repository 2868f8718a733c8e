package commands

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"

	"github.com/faktura-dev/faktura/internal/model"
	"github.com/faktura-dev/faktura/internal/rowedit"
)

// editRow shows the row dialog in the terminal, pre-filled from values,
// and returns the edited values. Validation of the whole row is left to
// the session.
func editRow(values url.Values) (url.Values, error) {
	description := values.Get("description")
	cost := values.Get("cost")
	count := values.Get("count")
	unit := model.Unit(atoiOr(values.Get("unit"), 0))
	vat := model.VATRate(atoiOr(values.Get("vat"), 0))
	isRotRut := values.Get("is_rot_rut") != ""
	service := model.ServiceType(atoiOr(values.Get("rot_rut_service_type"), 0))

	unitOptions := make([]huh.Option[model.Unit], 0, len(model.Units))
	for _, u := range model.Units {
		unitOptions = append(unitOptions, huh.NewOption(u.String(), u))
	}
	vatOptions := make([]huh.Option[model.VATRate], 0, len(model.VATRates))
	for _, v := range model.VATRates {
		vatOptions = append(vatOptions, huh.NewOption(v.String(), v))
	}
	var serviceOptions []huh.Option[model.ServiceType]
	for _, kind := range []model.ReductionKind{model.ReductionROT, model.ReductionRUT} {
		for _, s := range model.Services(kind) {
			serviceOptions = append(serviceOptions, huh.NewOption(string(kind)+": "+s.String(), s))
		}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Beskrivning").
				Value(&description).
				Validate(requiredText),
			huh.NewInput().
				Title("À-pris inkl. moms").
				Value(&cost).
				Validate(validateAmount),
			huh.NewInput().
				Title("Antal").
				Value(&count).
				Validate(validateAmount),
			huh.NewSelect[model.Unit]().
				Title("Enhet").
				Options(unitOptions...).
				Value(&unit),
			huh.NewSelect[model.VATRate]().
				Title("Moms").
				Options(vatOptions...).
				Value(&vat),
			huh.NewConfirm().
				Title("ROT/RUT").
				Affirmative("Ja").
				Negative("Nej").
				Value(&isRotRut),
		),
		huh.NewGroup(
			huh.NewSelect[model.ServiceType]().
				Title("Typ av tjänst").
				Options(serviceOptions...).
				Value(&service),
		).WithHideFunc(func() bool { return !isRotRut }),
	).WithTheme(huhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return nil, err
	}

	out := url.Values{}
	out.Set("id", values.Get("id"))
	out.Set("description", description)
	out.Set("cost", cost)
	out.Set("count", count)
	out.Set("unit", strconv.Itoa(int(unit)))
	out.Set("vat", strconv.Itoa(int(vat)))
	if isRotRut {
		out.Set("is_rot_rut", "on")
		out.Set("rot_rut_service_type", strconv.Itoa(int(service)))
	}
	return out, nil
}

func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func requiredText(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

// validateAmount accepts the same input as the row dialog: comma or
// period decimals, not negative.
func validateAmount(s string) error {
	if err := requiredText(s); err != nil {
		return err
	}
	v, ok := rowedit.ParseAmount(s)
	if !ok {
		return errors.New("not a number")
	}
	if v.LessThan(decimal.Zero) {
		return errors.New("must not be negative")
	}
	return nil
}
