// Package load defines the shipment records exchanged with the load API:
// the create payload, the list read model and the helpers that project a
// record into display strings.
package load

// DefaultCountry is stamped on every pickup and consignee in a create payload.
const DefaultCountry = "USA"

// Stop is a pickup or consignee location.
type Stop struct {
	Name     string `json:"name" validate:"required"`
	ApptTime string `json:"apptTime"`
	City     string `json:"city" validate:"required"`
	State    string `json:"state" validate:"required"`
	Country  string `json:"country"`
}

type CustomerRef struct {
	Name          string `json:"name" validate:"required"`
	ExternalTMSID string `json:"externalTMSId" validate:"required"`
}

type Specifications struct {
	MinTempFahrenheit float64 `json:"minTempFahrenheit"`
	MaxTempFahrenheit float64 `json:"maxTempFahrenheit"`
}

// Load is the create-load request body.
type Load struct {
	ID             string         `json:"id,omitempty"`
	Pickup         Stop           `json:"pickup"`
	Consignee      Stop           `json:"consignee"`
	Status         Status         `json:"status" validate:"required,loadstatus"`
	Customer       CustomerRef    `json:"customer"`
	Specifications Specifications `json:"specifications"`
	TotalWeight    float64        `json:"totalWeight" validate:"gt=0"`
}
