package queue

import (
	"encoding/json"

	"github.com/vastrakart/vastrakart/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderStatusEmail notifies the customer about an order status change.
	TaskOrderStatusEmail = constants.TaskOrderStatusEmail
	// TaskOrderConfirmEmail sends the post-payment order confirmation.
	TaskOrderConfirmEmail = constants.TaskOrderConfirmEmail
	// TaskCancelRequestEmail notifies about a cancellation request decision.
	TaskCancelRequestEmail = constants.TaskCancelRequestEmail
)

// OrderStatusEmailPayload carries an order status change notification.
type OrderStatusEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// OrderConfirmEmailPayload carries a new-order confirmation.
type OrderConfirmEmailPayload struct {
	OrderID uint `json:"order_id"`
}

// CancelRequestEmailPayload carries a cancellation request update.
type CancelRequestEmailPayload struct {
	RequestID uint   `json:"request_id"`
	Status    string `json:"status"`
}

// NewOrderStatusEmailTask builds the status notification task.
func NewOrderStatusEmailTask(payload OrderStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusEmail, body), nil
}

// NewOrderConfirmEmailTask builds the confirmation task.
func NewOrderConfirmEmailTask(payload OrderConfirmEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderConfirmEmail, body), nil
}

// NewCancelRequestEmailTask builds the cancellation decision task.
func NewCancelRequestEmailTask(payload CancelRequestEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCancelRequestEmail, body), nil
}
