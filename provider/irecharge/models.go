package irecharge

// Raw statuses of the iRecharge API.
const (
	STATUS_OK        = "00"
	STATUS_NOT_FOUND = "05"
	STATUS_PENDING   = "09"
)

type verifyResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	CustomerName string `json:"customer_name"`
}

type variationsResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Bundles []bundleRow `json:"bundles"`
}

type bundleRow struct {
	Code     string `json:"code"`
	Title    string `json:"title"`
	Price    string `json:"price"`
	Validity string `json:"validity"`
}

type vendResponse struct {
	Status      string          `json:"status"`
	Message     string          `json:"message"`
	OrderRef    string          `json:"order_ref"`
	Transaction vendTransaction `json:"transaction"`
}

type vendTransaction struct {
	Status string `json:"status"`
}

type vendStatusResponse struct {
	Status      string          `json:"status"`
	Message     string          `json:"message"`
	OrderRef    string          `json:"order_ref"`
	Transaction vendTransaction `json:"transaction"`
}
