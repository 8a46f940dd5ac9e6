package public

import (
	"errors"

	handlershared "github.com/vastrakart/vastrakart/internal/http/handlers/shared"
	"github.com/vastrakart/vastrakart/internal/http/response"
	"github.com/vastrakart/vastrakart/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError maps a business error to an API error response.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, msg: "quantity must be at least 1"},
	{target: service.ErrInvalidCartItem, code: response.CodeBadRequest, msg: "invalid cart item"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrVariantNotFound, code: response.CodeNotFound, msg: "product variant not found"},
	{target: service.ErrProductInactive, code: response.CodeBadRequest, msg: "product is not available"},
}

var discountErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "cart is empty"},
	{target: service.ErrDiscountInvalid, code: response.CodeBadRequest, msg: "discount code is not valid"},
	{target: service.ErrDiscountNotStarted, code: response.CodeBadRequest, msg: "discount code is not active yet"},
	{target: service.ErrDiscountExpired, code: response.CodeBadRequest, msg: "discount code has expired"},
	{target: service.ErrDiscountUsageLimit, code: response.CodeBadRequest, msg: "discount code usage limit reached"},
	{target: service.ErrDiscountBelowMinimum, code: response.CodeBadRequest, msg: "cart total is below the discount minimum"},
}

// The gateway rules keep detail out of the client message; the full error is
// logged server-side by the fallback path before these fire.
var paymentIntentErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "cart is empty"},
	{target: service.ErrAmountMismatch, code: response.CodeBadRequest, msg: "payment amount does not match the cart total"},
	{target: service.ErrGatewayConfig, code: response.CodeInternal, msg: "payment gateway is not configured"},
	{target: service.ErrGatewayRejected, code: response.CodeBadGateway, msg: "payment gateway rejected the request"},
	{target: service.ErrGatewayUnreachable, code: response.CodeBadGateway, msg: "payment gateway is unreachable, please retry"},
}

var paymentVerifyErrorRules = []mappedHandlerError{
	{target: service.ErrSignatureInvalid, code: response.CodeBadRequest, msg: "payment verification failed"},
	{target: service.ErrPaymentNotCompleted, code: response.CodeBadRequest, msg: "payment is not completed"},
	{target: service.ErrAmountMismatch, code: response.CodeBadRequest, msg: "payment verification failed"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "cart is empty"},
	{target: service.ErrGatewayConfig, code: response.CodeInternal, msg: "payment gateway is not configured"},
	{target: service.ErrGatewayRejected, code: response.CodeBadGateway, msg: "payment gateway rejected the request"},
	{target: service.ErrGatewayUnreachable, code: response.CodeBadGateway, msg: "payment gateway is unreachable, please retry"},
}

var cancelRequestErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrNotOwner, code: response.CodeForbidden, msg: "this order belongs to another account"},
	{target: service.ErrCancelTypeInvalid, code: response.CodeBadRequest, msg: "request type must be cancel or refund"},
	{target: service.ErrCancelStateInvalid, code: response.CodeConflict, msg: "order cannot be cancelled in its current state"},
	{target: service.ErrRefundStateInvalid, code: response.CodeConflict, msg: "order is not eligible for a refund"},
	{target: service.ErrRefundWindowExpired, code: response.CodeConflict, msg: "the refund window for this order has expired"},
	{target: service.ErrCancelRequestExists, code: response.CodeConflict, msg: "a request for this order is already open"},
}

var authErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "name, email and a password of 6+ characters are required"},
	{target: service.ErrEmailExists, code: response.CodeBadRequest, msg: "an account with this email already exists"},
	{target: service.ErrAuthFailed, code: response.CodeUnauthorized, msg: "invalid email or password"},
}
