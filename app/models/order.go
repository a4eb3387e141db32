package models

// Customer is the checkout form input. Name is the only required field;
// contact is free-form (phone or email) and validated only when it looks
// like an email.
type Customer struct {
	Name    string `json:"name"    validate:"required,max=200"`
	Contact string `json:"contact" validate:"max=200"`
}

// OrderItem is the wire shape for one line inside an order payload.
type OrderItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}

// Order is the write-only projection POSTed to the order endpoint. It is
// never persisted locally; it exists only for the duration of a submission.
type Order struct {
	Timestamp       string      `json:"timestamp"`
	CustomerName    string      `json:"customerName"`
	CustomerContact string      `json:"customerContact"`
	Items           []OrderItem `json:"items"`
	Subtotal        float64     `json:"subtotal"`
}
