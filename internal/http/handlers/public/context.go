package public

import (
	"fmt"
	"strings"

	handlershared "github.com/vastrakart/vastrakart/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	cartTokenHeader = "X-Cart-Token"
	cartTokenCookie = "cart_token"
	cartCookieTTL   = 30 * 24 * 3600
)

func getStoreID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "store_id")
}

func getCustomerID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "customer_id")
}

// optionalCustomerID reads the customer id without failing the request; cart
// and checkout endpoints work for guests too.
func optionalCustomerID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("customer_id")
	if !exists {
		return 0, false
	}
	if id, ok := value.(uint); ok && id > 0 {
		return id, true
	}
	return 0, false
}

func getSellerState(c *gin.Context) string {
	if value, ok := c.Get("seller_state"); ok {
		if state, ok := value.(string); ok {
			return state
		}
	}
	return ""
}

// resolveCartKey identifies the cart for this request. Logged-in customers
// get a stable key derived from their account; guests carry a token via
// header or cookie, minted here on first contact.
func resolveCartKey(c *gin.Context) string {
	if customerID, ok := optionalCustomerID(c); ok {
		return fmt.Sprintf("customer:%d", customerID)
	}

	token := strings.TrimSpace(c.GetHeader(cartTokenHeader))
	if token == "" {
		if cookie, err := c.Cookie(cartTokenCookie); err == nil {
			token = strings.TrimSpace(cookie)
		}
	}
	if token == "" {
		token = uuid.NewString()
	}
	c.Header(cartTokenHeader, token)
	c.SetCookie(cartTokenCookie, token, cartCookieTTL, "/", "", false, true)
	return "guest:" + token
}
