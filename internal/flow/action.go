package flow

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/orderbot/pkg/types"
)

// ActionKind tags the variant of an Action
type ActionKind uint8

const (
	ActionUnknown ActionKind = iota

	// Free text and commands
	ActionStart
	ActionPlaceOrder
	ActionViewCart
	ActionInfo
	ActionListOrders
	ActionText

	// Button presses
	ActionSelectCategory
	ActionSelectProduct
	ActionAddToCart
	ActionClearCart
	ActionConfirmOrder
	ActionPayment
	ActionBackToCategories
	ActionBackToMain
	ActionBackToProducts
)

var actionNames = map[ActionKind]string{
	ActionUnknown:          "unknown",
	ActionStart:            "start",
	ActionPlaceOrder:       "place_order",
	ActionViewCart:         "view_cart",
	ActionInfo:             "info",
	ActionListOrders:       "list_orders",
	ActionText:             "text",
	ActionSelectCategory:   "select_category",
	ActionSelectProduct:    "select_product",
	ActionAddToCart:        "add_to_cart",
	ActionClearCart:        "clear_cart",
	ActionConfirmOrder:     "confirm_order",
	ActionPayment:          "payment",
	ActionBackToCategories: "back_to_categories",
	ActionBackToMain:       "back_to_main",
	ActionBackToProducts:   "back_to_products",
}

func (k ActionKind) String() string {
	if name, ok := actionNames[k]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", uint8(k))
}

// User identifies the chat user behind an action
type User struct {
	ID       int64
	Username string // Optional
	FullName string
}

// Action is one inbound user event. Which payload field is set depends on
// Kind: EntityID for category/product/add actions, Payment for
// ActionPayment, Text for ActionText.
type Action struct {
	Kind       ActionKind
	User       User
	EntityID   int64
	Payment    types.PaymentMethod
	Text       string
	FromButton bool // the action came from an inline button and may edit its message
}

// Commands and reply-keyboard labels recognised in free text
const (
	CommandStart  = "/start"
	CommandOrders = "/orders"

	MenuPlaceOrder = "🛒 Buyurtma berish"
	MenuCart       = "📋 Savat"
	MenuInfo       = "ℹ️ Ma'lumot"
)

// Callback payloads carried by inline buttons
const (
	callbackCategory = "cat_"
	callbackProduct  = "prod_"
	callbackAdd      = "add_"
	callbackPay      = "pay_"

	CallbackViewCart         = "view_cart"
	CallbackClearCart        = "clear_cart"
	CallbackConfirmOrder     = "confirm_order"
	CallbackBackToCategories = "back_to_categories"
	CallbackBackToMain       = "back_to_main"
	CallbackBackToProducts   = "back_to_products"
)

// ErrUnknownCallback is returned for button payloads the flow does not know
var ErrUnknownCallback = errors.New("unknown callback data")

// CategoryCallback returns the payload of a category button
func CategoryCallback(id int64) string { return callbackCategory + strconv.FormatInt(id, 10) }

// ProductCallback returns the payload of a product button
func ProductCallback(id int64) string { return callbackProduct + strconv.FormatInt(id, 10) }

// AddCallback returns the payload of an add-to-cart button
func AddCallback(id int64) string { return callbackAdd + strconv.FormatInt(id, 10) }

// PaymentCallback returns the payload of a payment method button
func PaymentCallback(m types.PaymentMethod) string { return callbackPay + string(m) }

// ParseText maps a free-text message to an action. Commands and menu labels
// take precedence over the conversation state; everything else is ActionText.
func ParseText(user User, text string) Action {
	trimmed := strings.TrimSpace(text)

	switch {
	case trimmed == CommandStart || strings.HasPrefix(trimmed, CommandStart+" "):
		return Action{Kind: ActionStart, User: user}
	case trimmed == CommandOrders:
		return Action{Kind: ActionListOrders, User: user}
	case trimmed == MenuPlaceOrder:
		return Action{Kind: ActionPlaceOrder, User: user}
	case trimmed == MenuCart:
		return Action{Kind: ActionViewCart, User: user}
	case trimmed == MenuInfo:
		return Action{Kind: ActionInfo, User: user}
	}

	return Action{Kind: ActionText, User: user, Text: text}
}

// ParseCallback maps an inline button payload to an action
func ParseCallback(user User, data string) (Action, error) {
	a := Action{User: user, FromButton: true}

	switch data {
	case CallbackViewCart:
		a.Kind = ActionViewCart
		return a, nil
	case CallbackClearCart:
		a.Kind = ActionClearCart
		return a, nil
	case CallbackConfirmOrder:
		a.Kind = ActionConfirmOrder
		return a, nil
	case CallbackBackToCategories:
		a.Kind = ActionBackToCategories
		return a, nil
	case CallbackBackToMain:
		a.Kind = ActionBackToMain
		return a, nil
	case CallbackBackToProducts:
		a.Kind = ActionBackToProducts
		return a, nil
	}

	if rest, ok := strings.CutPrefix(data, callbackPay); ok {
		method := types.PaymentMethod(rest)
		if !method.Valid() {
			return Action{}, fmt.Errorf("%w: %q: %w", ErrUnknownCallback, data, types.ErrUnknownPaymentMethod)
		}
		a.Kind = ActionPayment
		a.Payment = method
		return a, nil
	}

	prefixes := []struct {
		prefix string
		kind   ActionKind
	}{
		{callbackCategory, ActionSelectCategory},
		{callbackProduct, ActionSelectProduct},
		{callbackAdd, ActionAddToCart},
	}
	for _, p := range prefixes {
		rest, ok := strings.CutPrefix(data, p.prefix)
		if !ok {
			continue
		}
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil || id <= 0 {
			return Action{}, fmt.Errorf("%w: %q: bad id", ErrUnknownCallback, data)
		}
		a.Kind = p.kind
		a.EntityID = id
		return a, nil
	}

	return Action{}, fmt.Errorf("%w: %q", ErrUnknownCallback, data)
}
