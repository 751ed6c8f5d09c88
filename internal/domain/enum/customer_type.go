package enum

// CustomerType classifies a guest for customer-targeted offers.
type CustomerType string

const (
	CustomerFirstTime CustomerType = "first_time"
	CustomerReturning CustomerType = "returning"
	CustomerLoyalty   CustomerType = "loyalty"
)
