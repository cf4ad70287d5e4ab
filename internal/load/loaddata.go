package load

import "encoding/json"

type StatusCode struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type LoadStatus struct {
	Code StatusCode `json:"code"`
}

type ParentAccount struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type Customer struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	ParentAccount *ParentAccount `json:"parentAccount,omitempty"`
}

// CustomerOrder links a load to a customer account.
type CustomerOrder struct {
	ID       int64     `json:"id"`
	Customer *Customer `json:"customer,omitempty"`
	Deleted  bool      `json:"deleted"`
}

// LoadData is one row of the view-loads response.
type LoadData struct {
	ID            int64           `json:"id"`
	CustomID      string          `json:"customId"`
	Status        LoadStatus      `json:"status"`
	CustomerOrder []CustomerOrder `json:"customerOrder"`
	CarrierOrder  json.RawMessage `json:"carrierOrder,omitempty"`
	Created       string          `json:"created"`
	Updated       string          `json:"updated"`
	LastUpdatedOn string          `json:"lastUpdatedOn"`
	CreatedDate   string          `json:"createdDate"`
}

// PrimaryCustomer returns the customer of the first customer order.
func (d LoadData) PrimaryCustomer() (Customer, bool) {
	if len(d.CustomerOrder) == 0 || d.CustomerOrder[0].Customer == nil {
		return Customer{}, false
	}
	return *d.CustomerOrder[0].Customer, true
}

// HasCarrier reports whether a carrier order is attached. A JSON null counts
// as absent.
func (d LoadData) HasCarrier() bool {
	raw := string(d.CarrierOrder)
	return raw != "" && raw != "null"
}

// StatusValue is the display value of the status code.
func (d LoadData) StatusValue() string {
	return d.Status.Code.Value
}
