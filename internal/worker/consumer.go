package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/vastrakart/vastrakart/internal/constants"
	"github.com/vastrakart/vastrakart/internal/logger"
	"github.com/vastrakart/vastrakart/internal/provider"
	"github.com/vastrakart/vastrakart/internal/queue"
	"github.com/vastrakart/vastrakart/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer handles async email tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates a consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register binds the task handlers.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(constants.TaskOrderStatusEmail, c.handleOrderStatusEmail)
	mux.HandleFunc(constants.TaskOrderConfirmEmail, c.handleOrderConfirmEmail)
	mux.HandleFunc(constants.TaskCancelRequestEmail, c.handleCancelRequestEmail)
}

func (c *Consumer) handleOrderStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.OrderStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_status_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_status_email_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_status_email_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	receiver := strings.TrimSpace(order.CustomerEmail)
	if receiver == "" {
		logger.Debugw("worker_order_status_email_skip_empty_receiver", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}

	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = order.Status
	}
	err = c.EmailService.SendOrderStatusEmail(receiver, service.OrderStatusEmailInput{
		OrderNo: order.OrderNo,
		Status:  status,
		Amount:  order.TotalAmount,
	})
	if err != nil {
		logger.Warnw("worker_order_status_email_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"status", status,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleOrderConfirmEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.OrderConfirmEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_confirm_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_confirm_email_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_confirm_email_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	receiver := strings.TrimSpace(order.CustomerEmail)
	if receiver == "" {
		logger.Debugw("worker_order_confirm_email_skip_empty_receiver", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}

	itemCount := 0
	for _, item := range order.Items {
		itemCount += item.Quantity
	}
	err = c.EmailService.SendOrderConfirmEmail(receiver, service.OrderConfirmEmailInput{
		OrderNo:   order.OrderNo,
		Amount:    order.TotalAmount,
		ItemCount: itemCount,
	})
	if err != nil {
		logger.Warnw("worker_order_confirm_email_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleCancelRequestEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.CancelRequestEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_cancel_request_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.RequestID == 0 {
		return nil
	}
	request, err := c.CancelRequestRepo.GetByID(payload.RequestID)
	if err != nil {
		logger.Warnw("worker_cancel_request_email_fetch_failed", "request_id", payload.RequestID, "error", err)
		return err
	}
	if request == nil {
		logger.Debugw("worker_cancel_request_email_skip_not_found", "request_id", payload.RequestID)
		return nil
	}
	receiver := strings.TrimSpace(request.CustomerEmail)
	if receiver == "" {
		logger.Debugw("worker_cancel_request_email_skip_empty_receiver", "request_id", request.ID)
		return nil
	}

	orderNo := ""
	if request.Order != nil {
		orderNo = request.Order.OrderNo
	}
	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = request.Status
	}
	err = c.EmailService.SendCancelRequestEmail(receiver, service.CancelRequestEmailInput{
		OrderNo: orderNo,
		Type:    request.Type,
		Status:  status,
	})
	if err != nil {
		logger.Warnw("worker_cancel_request_email_send_failed",
			"request_id", request.ID,
			"status", status,
			"error", err,
		)
		return err
	}
	return nil
}
