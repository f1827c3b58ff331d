package flow

import (
	"fmt"
	"sync"
)

// StateKind tags the variant of a conversation State
type StateKind uint8

const (
	StateIdle StateKind = iota
	StateBrowsingCategories
	StateBrowsingProducts
	StateProductDetail
	StateCartView
	StateAwaitingPhone
	StateAwaitingPayment
)

var stateNames = [...]string{
	StateIdle:               "idle",
	StateBrowsingCategories: "browsing_categories",
	StateBrowsingProducts:   "browsing_products",
	StateProductDetail:      "product_detail",
	StateCartView:           "cart_view",
	StateAwaitingPhone:      "awaiting_phone",
	StateAwaitingPayment:    "awaiting_payment",
}

func (k StateKind) String() string {
	if int(k) < len(stateNames) {
		return stateNames[k]
	}
	return fmt.Sprintf("state(%d)", uint8(k))
}

// State is where a user is in the ordering conversation.
// CategoryID is set while browsing products or a product, ProductID in
// ProductDetail, Phone in AwaitingPayment.
type State struct {
	Kind       StateKind
	CategoryID int64
	ProductID  int64
	Phone      string
}

func Idle() State               { return State{Kind: StateIdle} }
func BrowsingCategories() State { return State{Kind: StateBrowsingCategories} }
func CartView() State           { return State{Kind: StateCartView} }
func AwaitingPhone() State      { return State{Kind: StateAwaitingPhone} }

func BrowsingProducts(categoryID int64) State {
	return State{Kind: StateBrowsingProducts, CategoryID: categoryID}
}

func ProductDetail(categoryID, productID int64) State {
	return State{Kind: StateProductDetail, CategoryID: categoryID, ProductID: productID}
}

func AwaitingPayment(phone string) State {
	return State{Kind: StateAwaitingPayment, Phone: phone}
}

// PendingPhone returns the captured phone number while a payment method is
// being chosen.
func (s State) PendingPhone() (string, bool) {
	if s.Kind != StateAwaitingPayment {
		return "", false
	}
	return s.Phone, true
}

// Sessions stores the conversation state per user. Idle users have no entry.
type Sessions struct {
	mu     sync.Mutex
	states map[int64]State
}

// NewSessions creates an empty session store
func NewSessions() *Sessions {
	return &Sessions{
		states: make(map[int64]State),
	}
}

// Get returns the user's state, Idle if none is stored
func (s *Sessions) Get(userID int64) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.states[userID]; ok {
		return st
	}
	return Idle()
}

// Set replaces the user's state. Setting Idle discards the entry.
func (s *Sessions) Set(userID int64, st State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st.Kind == StateIdle {
		delete(s.states, userID)
		return
	}
	s.states[userID] = st
}

// Reset discards the user's state
func (s *Sessions) Reset(userID int64) {
	s.Set(userID, Idle())
}

// Len returns the number of users with a non-idle state
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.states)
}
