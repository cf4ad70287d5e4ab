package wizard

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/drumkit/drumkit/internal/load"
)

// form is the parsed view of the raw input strings. Pointers are nil when the
// input is blank or did not parse.
type form struct {
	PickupName     string `form:"pickupName" validate:"required"`
	PickupCity     string `form:"pickupCity" validate:"required"`
	PickupState    string `form:"pickupState" validate:"required"`
	ConsigneeName  string `form:"consigneeName" validate:"required"`
	ConsigneeCity  string `form:"consigneeCity" validate:"required"`
	ConsigneeState string `form:"consigneeState" validate:"required"`

	PickupDate    *time.Time `form:"pickupDate" validate:"required"`
	DeliveryDate  *time.Time `form:"deliveryDate" validate:"required"`
	Status        string     `form:"status" validate:"required,loadstatus"`
	CustomerName  string     `form:"customerName" validate:"required"`
	CustomerTMSID string     `form:"customerTMSId" validate:"required"`
	TotalWeight   *float64   `form:"totalWeight" validate:"required,gt=0"`
	MinTemp       *float64   `form:"minTemp" validate:"required"`
	MaxTemp       *float64   `form:"maxTemp" validate:"required"`
}

var dateLayouts = []string{DateLayout, "2006-01-02"}

func parseDate(s string, loc *time.Location) (*time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return &t, true
		}
	}
	return nil, false
}

func parseNumber(s string) (*float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return &f, true
}

// parse converts raw values into a form. Inputs that are present but
// malformed are reported in the returned map and left nil on the form.
func parse(values map[Field]string, loc *time.Location) (form, map[Field]string) {
	bad := map[Field]string{}
	get := func(f Field) string { return strings.TrimSpace(values[f]) }
	num := func(f Field) *float64 {
		raw := get(f)
		if raw == "" {
			return nil
		}
		n, ok := parseNumber(raw)
		if !ok {
			bad[f] = specByName[f].Label + " must be a number"
		}
		return n
	}
	date := func(f Field) *time.Time {
		raw := get(f)
		if raw == "" {
			return nil
		}
		t, ok := parseDate(raw, loc)
		if !ok {
			bad[f] = specByName[f].Label + " must be a valid date"
		}
		return t
	}

	fm := form{
		PickupName:     get(PickupName),
		PickupCity:     get(PickupCity),
		PickupState:    get(PickupState),
		ConsigneeName:  get(ConsigneeName),
		ConsigneeCity:  get(ConsigneeCity),
		ConsigneeState: get(ConsigneeState),
		PickupDate:     date(PickupDate),
		DeliveryDate:   date(DeliveryDate),
		Status:         get(Status),
		CustomerName:   get(CustomerName),
		CustomerTMSID:  get(CustomerTMSID),
		TotalWeight:    num(TotalWeight),
		MinTemp:        num(MinTemp),
		MaxTemp:        num(MaxTemp),
	}
	return fm, bad
}

// evaluate validates the whole form and returns one message per failing field.
func evaluate(v *validator.Validate, values map[Field]string, loc *time.Location) (form, map[Field]string) {
	fm, errs := parse(values, loc)
	err := v.Struct(fm)
	if err == nil {
		return fm, errs
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Only returned for invalid arguments, which a form struct never is.
		return fm, errs
	}
	for _, fe := range verrs {
		f := Field(fe.Field())
		if _, parsedBadly := errs[f]; parsedBadly {
			continue
		}
		errs[f] = message(f, fe.Tag())
	}
	return fm, errs
}

func message(f Field, tag string) string {
	spec := specByName[f]
	switch tag {
	case "required":
		return spec.Required
	case "gt":
		return "Weight must be greater than 0"
	case load.StatusTag:
		names := make([]string, 0, len(load.Statuses()))
		for _, s := range load.Statuses() {
			names = append(names, string(s))
		}
		return "Status must be one of " + strings.Join(names, ", ")
	default:
		return spec.Label + " is invalid"
	}
}
