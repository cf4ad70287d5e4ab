package wizard

import (
	"github.com/samber/lo"
)

// Step is a page of the create-load form.
type Step int

const (
	StepParties Step = iota + 1
	StepSchedule
)

func (s Step) String() string {
	switch s {
	case StepParties:
		return "Pickup & Consignee"
	case StepSchedule:
		return "Schedule & Details"
	default:
		return "Unknown"
	}
}

// Field names a form input.
type Field string

const (
	PickupName     Field = "pickupName"
	PickupCity     Field = "pickupCity"
	PickupState    Field = "pickupState"
	ConsigneeName  Field = "consigneeName"
	ConsigneeCity  Field = "consigneeCity"
	ConsigneeState Field = "consigneeState"

	PickupDate    Field = "pickupDate"
	DeliveryDate  Field = "deliveryDate"
	Status        Field = "status"
	CustomerName  Field = "customerName"
	CustomerTMSID Field = "customerTMSId"
	TotalWeight   Field = "totalWeight"
	MinTemp       Field = "minTemp"
	MaxTemp       Field = "maxTemp"
)

// Kind tells the view how to parse and complete a field.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindDate
	KindStatus
)

// FieldSpec describes one input.
type FieldSpec struct {
	Name        Field
	Label       string
	Step        Step
	Kind        Kind
	Placeholder string
	Required    string
	Initial     string
}

// DateLayout is the accepted input format for dates.
const DateLayout = "2006-01-02 15:04"

// fieldSpecs is in display order: the two stops side by side on step 1.
var fieldSpecs = []FieldSpec{
	{Name: PickupName, Label: "Pickup Name", Step: StepParties, Placeholder: "Enter pickup name", Required: "Pickup name is required"},
	{Name: ConsigneeName, Label: "Consignee Name", Step: StepParties, Placeholder: "Enter consignee name", Required: "Consignee name is required"},
	{Name: PickupCity, Label: "Pickup City", Step: StepParties, Placeholder: "Enter pickup city", Required: "Pickup city is required"},
	{Name: ConsigneeCity, Label: "Consignee City", Step: StepParties, Placeholder: "Enter consignee city", Required: "Consignee city is required"},
	{Name: PickupState, Label: "Pickup State", Step: StepParties, Placeholder: "Enter pickup state", Required: "Pickup state is required"},
	{Name: ConsigneeState, Label: "Consignee State", Step: StepParties, Placeholder: "Enter consignee state", Required: "Consignee state is required"},

	{Name: PickupDate, Label: "Pickup Date", Step: StepSchedule, Kind: KindDate, Placeholder: DateLayout, Required: "Pickup date is required"},
	{Name: DeliveryDate, Label: "Delivery Date", Step: StepSchedule, Kind: KindDate, Placeholder: DateLayout, Required: "Delivery date is required"},
	{Name: Status, Label: "Status", Step: StepSchedule, Kind: KindStatus, Placeholder: "Select status", Required: "Status is required"},
	{Name: TotalWeight, Label: "Total Weight (lbs)", Step: StepSchedule, Kind: KindNumber, Placeholder: "Enter total weight", Required: "Weight is required", Initial: "0"},
	{Name: CustomerName, Label: "Customer Name", Step: StepSchedule, Placeholder: "Enter customer name", Required: "Customer name is required"},
	{Name: CustomerTMSID, Label: "Customer TMS ID", Step: StepSchedule, Placeholder: "Enter customer TMS ID", Required: "Customer TMS ID is required"},
	{Name: MinTemp, Label: "Min Temperature (°F)", Step: StepSchedule, Kind: KindNumber, Placeholder: "Enter minimum temperature", Required: "Minimum temperature is required", Initial: "32"},
	{Name: MaxTemp, Label: "Max Temperature (°F)", Step: StepSchedule, Kind: KindNumber, Placeholder: "Enter maximum temperature", Required: "Maximum temperature is required", Initial: "75"},
}

var specByName = lo.KeyBy(fieldSpecs, func(s FieldSpec) Field { return s.Name })

// Fields returns every field spec in display order.
func Fields() []FieldSpec {
	return append([]FieldSpec(nil), fieldSpecs...)
}

// StepFields returns the specs shown on step s.
func StepFields(s Step) []FieldSpec {
	return lo.Filter(fieldSpecs, func(f FieldSpec, _ int) bool { return f.Step == s })
}

// StepFieldNames returns the names of the fields on step s.
func StepFieldNames(s Step) []Field {
	return lo.Map(StepFields(s), func(f FieldSpec, _ int) Field { return f.Name })
}

func initialValues() map[Field]string {
	return lo.SliceToMap(fieldSpecs, func(s FieldSpec) (Field, string) { return s.Name, s.Initial })
}
