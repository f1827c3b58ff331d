package flow

import (
	"fmt"
	"strings"

	"github.com/dshills/orderbot/pkg/types"
)

// ReplyMode tells the transport how to deliver a reply
type ReplyMode string

const (
	// ModeSend posts a new message
	ModeSend ReplyMode = "send"
	// ModeEdit rewrites the message whose button triggered the action
	ModeEdit ReplyMode = "edit"
	// ModeReplace deletes that message and posts a new one
	ModeReplace ReplyMode = "replace"
)

// MarkupKind distinguishes the two keyboard styles
type MarkupKind string

const (
	// MarkupReply is the persistent keyboard under the input field
	MarkupReply MarkupKind = "reply"
	// MarkupInline is attached to a single message
	MarkupInline MarkupKind = "inline"
)

// Button is one keyboard key. Data is empty for reply keyboards, whose keys
// send their label as text.
type Button struct {
	Text string `json:"text"`
	Data string `json:"data,omitempty"`
}

// Markup is a keyboard laid out in rows
type Markup struct {
	Kind MarkupKind `json:"kind"`
	Rows [][]Button `json:"rows"`
}

// Reply is one outbound message to the acting user
type Reply struct {
	Text   string    `json:"text"`
	Mode   ReplyMode `json:"mode"`
	Markup *Markup   `json:"markup,omitempty"`
	Notice string    `json:"notice,omitempty"` // Short popup acknowledging a button press
}

func send(text string, markup *Markup) Reply {
	return Reply{Text: text, Mode: ModeSend, Markup: markup}
}

// respond edits the triggering message for button actions and sends a new
// message otherwise.
func respond(a Action, text string, markup *Markup) Reply {
	if a.FromButton {
		return Reply{Text: text, Mode: ModeEdit, Markup: markup}
	}
	return send(text, markup)
}

func inline(rows ...[]Button) *Markup {
	return &Markup{Kind: MarkupInline, Rows: rows}
}

func row(buttons ...Button) []Button {
	return buttons
}

// MainMenu is the persistent top-level keyboard
func MainMenu() *Markup {
	return &Markup{
		Kind: MarkupReply,
		Rows: [][]Button{
			{{Text: MenuPlaceOrder}},
			{{Text: MenuCart}, {Text: MenuInfo}},
		},
	}
}

func categoriesMarkup(categories []types.Category) *Markup {
	rows := make([][]Button, 0, len(categories)+1)
	for _, c := range categories {
		rows = append(rows, row(Button{Text: c.Name, Data: CategoryCallback(c.ID)}))
	}
	rows = append(rows, row(Button{Text: labelBack, Data: CallbackBackToMain}))
	return inline(rows...)
}

func productsMarkup(products []types.Product) *Markup {
	rows := make([][]Button, 0, len(products)+1)
	for _, p := range products {
		label := fmt.Sprintf("%s - %s", p.Name, types.FormatPrice(p.Price))
		rows = append(rows, row(Button{Text: label, Data: ProductCallback(p.ID)}))
	}
	rows = append(rows, row(Button{Text: labelBack, Data: CallbackBackToCategories}))
	return inline(rows...)
}

func productDetailMarkup(p *types.Product) *Markup {
	return inline(
		row(Button{Text: labelAddToCart, Data: AddCallback(p.ID)}),
		row(Button{Text: labelBack, Data: CallbackBackToProducts}),
	)
}

func addedMarkup() *Markup {
	return inline(
		row(Button{Text: labelBackToProducts, Data: CallbackBackToCategories}),
		row(Button{Text: labelViewCart, Data: CallbackViewCart}),
	)
}

func cartMarkup() *Markup {
	return inline(
		row(Button{Text: labelConfirmOrder, Data: CallbackConfirmOrder}),
		row(Button{Text: labelClearCart, Data: CallbackClearCart}),
		row(Button{Text: labelBack, Data: CallbackBackToMain}),
	)
}

func paymentMarkup() *Markup {
	return inline(
		row(Button{Text: labelCash, Data: PaymentCallback(types.PaymentCash)}),
		row(Button{Text: labelCard, Data: PaymentCallback(types.PaymentCard)}),
	)
}

func productText(p *types.Product) string {
	return fmt.Sprintf("📦 %s\n\n💰 Narxi: %s\n📝 %s", p.Name, types.FormatPrice(p.Price), p.Description)
}

func cartText(items []types.CartItem, total int64) string {
	var b strings.Builder
	b.WriteString("🛒 Savatingiz:\n\n")
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, item.Name, types.FormatPrice(item.Price))
	}
	fmt.Fprintf(&b, "\n💰 Jami: %s", types.FormatPrice(total))
	return b.String()
}

func orderAcceptedText(o *types.Order) string {
	return fmt.Sprintf(
		"✅ Buyurtma qabul qilindi!\n\n📝 Buyurtma raqami: #%d\n💰 Jami: %s\n💳 To'lov: %s\n\nTez orada siz bilan bog'lanamiz!",
		o.ID, types.FormatPrice(o.Total), o.PaymentMethod,
	)
}

func ordersText(orders []types.Order) string {
	var b strings.Builder
	b.WriteString("📋 Barcha buyurtmalar:\n\n")
	for _, o := range orders {
		fmt.Fprintf(&b, "#%d - %s - %s - %s\n", o.ID, o.FullName, types.FormatPrice(o.Total), o.PaymentMethod)
	}
	return b.String()
}

func greetingText(u User) string {
	return fmt.Sprintf(
		"👋 Assalomu aleykum, %s!\n\n🍕 Demo Restoran botiga xush kelibsiz!\n\nBuyurtma berish uchun tugmani bosing 👇",
		u.FullName,
	)
}

// Button labels
const (
	labelBack           = "🔙 Ortga"
	labelBackToProducts = "🔙 Mahsulotlarga qaytish"
	labelAddToCart      = "➕ Savatga qo'shish"
	labelViewCart       = "📋 Savatni ko'rish"
	labelConfirmOrder   = "✅ Buyurtmani tasdiqlash"
	labelClearCart      = "🗑 Savatni tozalash"
	labelCash           = "💵 Naqd"
	labelCard           = "💳 Karta"
)

// Fixed message texts
const (
	textChooseCategory = "Kategoriyani tanlang:"
	textChooseProduct  = "Mahsulotni tanlang:"
	textNoProducts     = "Bu kategoriyada hozircha mahsulot yo'q."
	textAddedNotice    = "✅ Savatga qo'shildi!"
	textAddedFormat    = "✅ %s savatga qo'shildi!\n\nYana mahsulot qo'shish yoki savatni ko'rish uchun tugmalardan foydalaning."
	textCartEmpty      = "🛒 Savatingiz bo'sh"
	textCartCleared    = "🗑 Savat tozalandi"
	textAskPhone       = "📱 Telefon raqamingizni yuboring:\n(Masalan: +998901234567)"
	textChoosePayment  = "💳 To'lov turini tanlang:"
	textMainMenu       = "Asosiy menyu:"
	textNoOrders       = "Buyurtmalar yo'q"
	textUnavailable    = "😔 Tanlangan element endi mavjud emas."
	textSessionExpired = "⌛ Buyurtma sessiyasi tugagan. Iltimos, qaytadan boshlang."
	textFailure        = "⚠️ Xatolik yuz berdi. Iltimos, keyinroq qayta urinib ko'ring."
	textUseMenu        = "Quyidagi menyudan foydalaning 👇"
	textBusy           = "⏳ Iltimos, kuting..."
	textInfo           = "ℹ️ Demo Restoran Bot\n\n" +
		"Bu bot orqali siz:\n" +
		"✅ Mahsulotlarni ko'rishingiz\n" +
		"✅ Buyurtma berishingiz\n" +
		"✅ To'lov turini tanlashingiz mumkin\n\n" +
		"📞 Aloqa: +998 90 123 45 67"
)
