// Package checkout turns a cart snapshot into an order and submits it to
// the configured order endpoint.
//
// Submission is strictly fire-once: local validation runs before any
// network traffic, and a rejected or failed submission leaves the cart
// untouched so the shopper can retry. Only a confirmed acceptance clears
// the cart, and that is the controller's job, keyed off a nil error here.
package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/shashiranjanraj/dukaan/app/models"
	"github.com/shashiranjanraj/dukaan/pkg/collection"
	"github.com/shashiranjanraj/dukaan/pkg/httpx"
	"github.com/shashiranjanraj/dukaan/pkg/logger"
	"github.com/shashiranjanraj/dukaan/pkg/metrics"
	"github.com/shashiranjanraj/dukaan/pkg/validate"
)

// Success-detection modes for the order endpoint's reply. Backends differ:
// some answer {"status":"ok"}, others {"success":true}.
const (
	ModeStatus = "status"
	ModeFlag   = "flag"
)

// ValidationError reports input rejected before any network call.
type ValidationError struct {
	Field  string // "cart" or a customer field name
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout: invalid %s: %s", e.Field, e.Reason)
}

// SubmissionError reports a submission that reached (or tried to reach)
// the endpoint and was not confirmed. The cart must be preserved.
type SubmissionError struct {
	StatusCode int // zero when the request never completed
	Err        error
}

func (e *SubmissionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("checkout: endpoint answered %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("checkout: submission failed: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// Submitter posts orders to a single endpoint.
type Submitter struct {
	url  string
	mode string
}

// NewSubmitter submits to url, interpreting replies per mode (ModeStatus
// or ModeFlag; anything else falls back to ModeStatus).
func NewSubmitter(url, mode string) *Submitter {
	if mode != ModeFlag {
		mode = ModeStatus
	}
	return &Submitter{url: url, mode: mode}
}

// Submit validates and posts one order built from customer and lines,
// returning the order it sent. Exactly one POST happens per call; local
// rejections (*ValidationError) never touch the network.
func (s *Submitter) Submit(ctx context.Context, customer models.Customer, lines []models.Line) (*models.Order, error) {
	if len(lines) == 0 {
		metrics.Orders.WithLabelValues("rejected").Inc()
		return nil, &ValidationError{Field: "cart", Reason: "cart is empty"}
	}
	if errs := validate.Struct(customer); validate.HasErrors(errs) {
		metrics.Orders.WithLabelValues("rejected").Inc()
		for field, reason := range errs {
			return nil, &ValidationError{Field: field, Reason: reason}
		}
	}
	// Contact is free-form (phone or email), but something that claims to
	// be an email has to parse as one.
	if contact := strings.TrimSpace(customer.Contact); strings.Contains(contact, "@") {
		if _, err := mail.ParseAddress(contact); err != nil {
			metrics.Orders.WithLabelValues("rejected").Inc()
			return nil, &ValidationError{Field: "contact", Reason: "not a valid email address"}
		}
	}

	order := s.build(customer, lines)

	resp, err := httpx.Post(s.url).
		WithContext(ctx).
		Body(order).
		Timeout(20 * time.Second).
		Retry(1, 0). // one attempt only, a retry could double-submit
		Send()
	if err != nil {
		metrics.Orders.WithLabelValues("error").Inc()
		return nil, &SubmissionError{Err: err}
	}
	if !resp.OK() {
		metrics.Orders.WithLabelValues("error").Inc()
		return nil, &SubmissionError{StatusCode: resp.StatusCode, Err: fmt.Errorf("non-2xx response")}
	}
	if err := s.confirm(resp.Raw); err != nil {
		metrics.Orders.WithLabelValues("error").Inc()
		return nil, &SubmissionError{StatusCode: resp.StatusCode, Err: err}
	}

	metrics.Orders.WithLabelValues("ok").Inc()
	logger.Info("order submitted", "customer", order.CustomerName, "items", len(order.Items), "subtotal", order.Subtotal)
	return order, nil
}

func (s *Submitter) build(customer models.Customer, lines []models.Line) *models.Order {
	items := collection.Map(lines, func(l models.Line) models.OrderItem {
		return models.OrderItem{ID: l.ProductID, Name: l.Name, Price: l.Price, Qty: l.Quantity}
	})
	return &models.Order{
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		CustomerName:    customer.Name,
		CustomerContact: customer.Contact,
		Items:           items,
		Subtotal:        collection.Sum(lines, models.Line.Total),
	}
}

// confirm parses the endpoint's reply for an explicit acceptance. A 2xx
// with a body that does not confirm is still a failure.
func (s *Submitter) confirm(raw []byte) error {
	switch s.mode {
	case ModeFlag:
		var body struct {
			Success bool `json:"success"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return fmt.Errorf("unreadable reply: %w", err)
		}
		if !body.Success {
			return fmt.Errorf("endpoint did not confirm the order")
		}
	default:
		var body struct {
			Status string `json:"status"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return fmt.Errorf("unreadable reply: %w", err)
		}
		if body.Status != "ok" {
			return fmt.Errorf("endpoint answered status %q", body.Status)
		}
	}
	return nil
}
