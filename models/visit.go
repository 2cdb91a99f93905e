package models

// Visit is the response of the greeting route: how many times a name has
// been greeted so far, including the current request.
type Visit struct {
	Name   string `json:"name"`
	Visits int64  `json:"visits"`
}
