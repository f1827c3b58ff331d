// Package flow is the conversation state machine of the ordering bot. It turns
// user actions into replies, moving each user from the category list through
// the cart to a confirmed order.
package flow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/orderbot/internal/cart"
	"github.com/dshills/orderbot/internal/storage"
	"github.com/dshills/orderbot/pkg/types"
)

// DefaultRecentOrders is how many orders the operator sees by default
const DefaultRecentOrders = 10

// lookupError names the catalog entity a handler failed to load
type lookupError struct {
	entity string
	id     int64
	err    error
}

func (e *lookupError) Error() string {
	return fmt.Sprintf("failed to get %s %d: %v", e.entity, e.id, e.err)
}

func (e *lookupError) Unwrap() error {
	return e.err
}

// Catalog is the read side of the menu
type Catalog interface {
	ListCategories(ctx context.Context) ([]types.Category, error)
	GetCategory(ctx context.Context, categoryID int64) (*types.Category, error)
	ListProducts(ctx context.Context, categoryID int64) ([]types.Product, error)
	GetProduct(ctx context.Context, productID int64) (*types.Product, error)
}

// Ledger records confirmed orders
type Ledger interface {
	CreateOrder(ctx context.Context, order *types.Order) error
	ListRecentOrders(ctx context.Context, limit int) ([]types.Order, error)
}

// Notifier tells the operator about a new order
type Notifier interface {
	Notify(ctx context.Context, order *types.Order) error
}

// Config holds the flow settings
type Config struct {
	OperatorID   int64 // Only this user may list orders; 0 disables the command
	RecentOrders int   // Orders shown by the list command
}

// Flow drives users from category selection to a confirmed order
type Flow struct {
	catalog  Catalog
	ledger   Ledger
	notifier Notifier
	carts    *cart.Registry
	sessions *Sessions
	config   Config
	logger   *zap.Logger
	locks    userLocks
}

// New creates a flow. carts and sessions are shared with whoever else needs
// to inspect them and must not be nil.
func New(catalog Catalog, ledger Ledger, notifier Notifier, carts *cart.Registry, sessions *Sessions, config Config, logger *zap.Logger) *Flow {
	if config.RecentOrders <= 0 {
		config.RecentOrders = DefaultRecentOrders
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flow{
		catalog:  catalog,
		ledger:   ledger,
		notifier: notifier,
		carts:    carts,
		sessions: sessions,
		config:   config,
		logger:   logger,
	}
}

// Handle processes one action and returns the replies for the acting user.
// Internal errors never reach the user: lookup misses become a "no longer
// available" reply and anything else a generic failure message. An action
// arriving while the same user's previous one is still running is refused.
func (f *Flow) Handle(ctx context.Context, a Action) []Reply {
	logger := f.logger.With(
		zap.String("action_id", uuid.NewString()),
		zap.Int64("user_id", a.User.ID),
		zap.Stringer("action", a.Kind),
	)

	lock := f.locks.get(a.User.ID)
	if !lock.TryAcquire() {
		logger.Debug("previous action still in progress")
		return []Reply{send(textBusy, nil)}
	}
	defer lock.Release()

	before := f.sessions.Get(a.User.ID)

	replies, err := f.dispatch(ctx, a)
	if err != nil {
		var miss *lookupError
		if errors.As(err, &miss) && errors.Is(err, storage.ErrNotFound) {
			logger.Info("entity no longer available",
				zap.String("entity", miss.entity),
				zap.Int64("entity_id", miss.id),
			)
			return []Reply{respond(a, textUnavailable, inline(row(Button{Text: labelBack, Data: CallbackBackToCategories})))}
		}
		logger.Error("action failed", zap.Stringer("state", before.Kind), zap.Error(err))
		return []Reply{send(textFailure, nil)}
	}

	logger.Debug("action handled",
		zap.Stringer("from", before.Kind),
		zap.Stringer("to", f.sessions.Get(a.User.ID).Kind),
	)
	return replies
}

func (f *Flow) dispatch(ctx context.Context, a Action) ([]Reply, error) {
	switch a.Kind {
	case ActionStart:
		return f.start(a), nil
	case ActionPlaceOrder, ActionBackToCategories:
		return f.showCategories(ctx, a)
	case ActionInfo:
		return []Reply{send(textInfo, nil)}, nil
	case ActionListOrders:
		return f.listOrders(ctx, a)
	case ActionText:
		return f.text(a), nil
	case ActionSelectCategory:
		return f.selectCategory(ctx, a)
	case ActionSelectProduct:
		return f.selectProduct(ctx, a)
	case ActionAddToCart:
		return f.addToCart(ctx, a)
	case ActionViewCart:
		return f.viewCart(a), nil
	case ActionClearCart:
		return f.clearCart(a), nil
	case ActionConfirmOrder:
		return f.confirmOrder(a), nil
	case ActionPayment:
		return f.payment(ctx, a)
	case ActionBackToMain:
		return f.backToMain(a), nil
	case ActionBackToProducts:
		return f.backToProducts(ctx, a)
	default:
		return nil, fmt.Errorf("unsupported action %s", a.Kind)
	}
}

func (f *Flow) start(a Action) []Reply {
	f.carts.Clear(a.User.ID)
	f.sessions.Reset(a.User.ID)
	return []Reply{send(greetingText(a.User), MainMenu())}
}

func (f *Flow) showCategories(ctx context.Context, a Action) ([]Reply, error) {
	categories, err := f.catalog.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	f.sessions.Set(a.User.ID, BrowsingCategories())
	return []Reply{respond(a, textChooseCategory, categoriesMarkup(categories))}, nil
}

func (f *Flow) selectCategory(ctx context.Context, a Action) ([]Reply, error) {
	return f.renderProducts(ctx, a, a.EntityID)
}

func (f *Flow) renderProducts(ctx context.Context, a Action, categoryID int64) ([]Reply, error) {
	if _, err := f.catalog.GetCategory(ctx, categoryID); err != nil {
		return nil, &lookupError{entity: "category", id: categoryID, err: err}
	}

	products, err := f.catalog.ListProducts(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products of category %d: %w", categoryID, err)
	}

	text := textChooseProduct
	if len(products) == 0 {
		text = textNoProducts
	}

	f.sessions.Set(a.User.ID, BrowsingProducts(categoryID))
	return []Reply{respond(a, text, productsMarkup(products))}, nil
}

func (f *Flow) selectProduct(ctx context.Context, a Action) ([]Reply, error) {
	product, err := f.catalog.GetProduct(ctx, a.EntityID)
	if err != nil {
		return nil, &lookupError{entity: "product", id: a.EntityID, err: err}
	}

	f.sessions.Set(a.User.ID, ProductDetail(product.CategoryID, product.ID))
	return []Reply{respond(a, productText(product), productDetailMarkup(product))}, nil
}

func (f *Flow) addToCart(ctx context.Context, a Action) ([]Reply, error) {
	product, err := f.catalog.GetProduct(ctx, a.EntityID)
	if err != nil {
		return nil, &lookupError{entity: "product", id: a.EntityID, err: err}
	}

	f.carts.Add(a.User.ID, *product)
	f.sessions.Set(a.User.ID, BrowsingProducts(product.CategoryID))

	r := respond(a, fmt.Sprintf(textAddedFormat, product.Name), addedMarkup())
	r.Notice = textAddedNotice
	return []Reply{r}, nil
}

func (f *Flow) viewCart(a Action) []Reply {
	items := f.carts.Get(a.User.ID)
	if len(items) == 0 {
		f.sessions.Reset(a.User.ID)
		return []Reply{respond(a, textCartEmpty, nil)}
	}

	f.sessions.Set(a.User.ID, CartView())
	return []Reply{respond(a, cartText(items, f.carts.Total(a.User.ID)), cartMarkup())}
}

func (f *Flow) clearCart(a Action) []Reply {
	f.carts.Clear(a.User.ID)
	f.sessions.Reset(a.User.ID)
	return []Reply{respond(a, textCartCleared, nil)}
}

func (f *Flow) confirmOrder(a Action) []Reply {
	// A stale confirm button can outlive the cart it was shown for
	if len(f.carts.Get(a.User.ID)) == 0 {
		f.sessions.Reset(a.User.ID)
		return []Reply{respond(a, textCartEmpty, nil)}
	}

	f.sessions.Set(a.User.ID, AwaitingPhone())
	return []Reply{respond(a, textAskPhone, nil)}
}

// text handles free text that is not a command or menu label. Only the phone
// prompt expects it.
func (f *Flow) text(a Action) []Reply {
	if f.sessions.Get(a.User.ID).Kind != StateAwaitingPhone {
		return []Reply{send(textUseMenu, MainMenu())}
	}

	// The number is stored verbatim; only blank input is refused
	if strings.TrimSpace(a.Text) == "" {
		return []Reply{send(textAskPhone, nil)}
	}

	f.sessions.Set(a.User.ID, AwaitingPayment(a.Text))
	return []Reply{send(textChoosePayment, paymentMarkup())}
}

func (f *Flow) payment(ctx context.Context, a Action) ([]Reply, error) {
	phone, ok := f.sessions.Get(a.User.ID).PendingPhone()
	if !ok {
		return []Reply{respond(a, textSessionExpired, nil)}, nil
	}

	items := f.carts.Get(a.User.ID)
	if len(items) == 0 {
		f.sessions.Reset(a.User.ID)
		return []Reply{respond(a, textCartEmpty, nil)}, nil
	}

	order := &types.Order{
		UserID:        a.User.ID,
		Username:      a.User.Username,
		FullName:      a.User.FullName,
		Phone:         phone,
		Items:         items,
		Total:         f.carts.Total(a.User.ID),
		PaymentMethod: a.Payment.Label(),
		Status:        types.StatusNew,
	}

	// Cart and pending phone survive a failed write so the user can retry
	if err := f.ledger.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	f.carts.Clear(a.User.ID)
	f.sessions.Reset(a.User.ID)

	if err := f.notifier.Notify(ctx, order); err != nil {
		f.logger.Warn("operator notification failed",
			zap.Int64("order_id", order.ID),
			zap.Error(err),
		)
	}

	f.logger.Info("order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", order.UserID),
		zap.Int64("total", order.Total),
		zap.String("payment_method", order.PaymentMethod),
	)

	return []Reply{respond(a, orderAcceptedText(order), nil)}, nil
}

func (f *Flow) backToMain(a Action) []Reply {
	f.sessions.Reset(a.User.ID)

	r := send(textMainMenu, MainMenu())
	if a.FromButton {
		r.Mode = ModeReplace
	}
	return []Reply{r}
}

// backToProducts returns from a product card to its category. Without a
// remembered category it falls back to the category list.
func (f *Flow) backToProducts(ctx context.Context, a Action) ([]Reply, error) {
	st := f.sessions.Get(a.User.ID)
	if st.CategoryID == 0 {
		return f.showCategories(ctx, a)
	}
	return f.renderProducts(ctx, a, st.CategoryID)
}

// listOrders is restricted to the operator; anyone else gets no reply at all
func (f *Flow) listOrders(ctx context.Context, a Action) ([]Reply, error) {
	if f.config.OperatorID == 0 || a.User.ID != f.config.OperatorID {
		return nil, nil
	}

	orders, err := f.ledger.ListRecentOrders(ctx, f.config.RecentOrders)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	if len(orders) == 0 {
		return []Reply{send(textNoOrders, nil)}, nil
	}
	return []Reply{send(ordersText(orders), nil)}, nil
}
