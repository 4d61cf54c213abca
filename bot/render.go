package bot

import (
	"fmt"
	"strconv"
	"strings"

	"food-storefront/models"
	"food-storefront/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
)

func formatPrice(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func esc(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

func orNotSet(s string) string {
	if strings.TrimSpace(s) == "" {
		return "not set"
	}
	return esc(s)
}

func button(text, action, arg string) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(text, callback(action, arg))
}

func cartButton(cart *services.Cart) tgbotapi.InlineKeyboardButton {
	label := "🛒 Cart"
	if n := cart.ItemCount(); n > 0 {
		label = fmt.Sprintf("🛒 Cart (%d)", n)
	}
	return button(label, cbCart, "")
}

func guestView() (string, tgbotapi.InlineKeyboardMarkup) {
	text := "🍽 *Food Delivery*\n\nLog in to browse restaurants and order."
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			button("🔑 Log in", cbLogin, ""),
			button("📝 Sign up", cbSignup, ""),
		),
	)
	return text, kb
}

func homeView(acc models.UserAccount, cart *services.Cart) (string, tgbotapi.InlineKeyboardMarkup) {
	text := fmt.Sprintf("👋 Welcome, *%s*!\n\nWhat would you like to eat today?", esc(acc.FullName))
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			button("📂 Categories", cbCategories, ""),
			button("🏪 Restaurants", cbRestaurants, ""),
		),
		tgbotapi.NewInlineKeyboardRow(
			cartButton(cart),
			button("👤 Profile", cbProfile, ""),
		),
	)
	return text, kb
}

func categoriesView(cats []models.Category, query string) (string, tgbotapi.InlineKeyboardMarkup) {
	text := "📂 *Categories*"
	if query != "" {
		text += fmt.Sprintf("\nMatching \"%s\"", esc(query))
	}
	if len(cats) == 0 {
		text += "\n\nNo categories found."
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(cats); i += 2 {
		row := tgbotapi.NewInlineKeyboardRow(button(cats[i].Name, cbCategory, cats[i].ID))
		if i+1 < len(cats) {
			row = append(row, button(cats[i+1].Name, cbCategory, cats[i+1].ID))
		}
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(button("🏪 All restaurants", cbRestaurants, "")))
	return text, tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func restaurantLabel(r models.Restaurant) string {
	label := r.Name
	if r.Rating > 0 {
		label += fmt.Sprintf(" ⭐ %.1f", r.Rating)
	}
	if r.DeliveryTime != "" {
		label += " · " + r.DeliveryTime
	}
	return label
}

func restaurantsView(title string, rests []models.Restaurant) (string, tgbotapi.InlineKeyboardMarkup) {
	text := fmt.Sprintf("🏪 *%s*", esc(title))
	if len(rests) == 0 {
		text += "\n\nNo restaurants here yet."
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, r := range rests {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button(restaurantLabel(r), cbRestaurant, r.ID)))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(button("⬅️ Categories", cbCategories, "")))
	return text, tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func searchView(query string, cats []models.Category, rests []models.Restaurant) (string, tgbotapi.InlineKeyboardMarkup) {
	text := fmt.Sprintf("🔎 Results for \"%s\"", esc(query))
	if len(cats) == 0 && len(rests) == 0 {
		text += "\n\nNothing found."
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, c := range cats {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button("📂 "+c.Name, cbCategory, c.ID)))
	}
	for _, r := range rests {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button("🏪 "+restaurantLabel(r), cbRestaurant, r.ID)))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(button("⬅️ Categories", cbCategories, "")))
	return text, tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func menuView(r models.Restaurant, items []models.MenuItem, cart *services.Cart) (string, tgbotapi.InlineKeyboardMarkup) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🍽 *%s*\n", esc(r.Name))
	if r.Rating > 0 || r.DeliveryTime != "" {
		fmt.Fprintf(&sb, "⭐ %.1f · %s\n", r.Rating, esc(r.DeliveryTime))
	}
	if len(items) == 0 {
		sb.WriteString("\nNo items on the menu yet.")
	}
	for _, it := range items {
		fmt.Fprintf(&sb, "\n• %s — %s", esc(it.Name), formatPrice(it.Price))
		if q := cart.Quantity(it.ID); q > 0 {
			fmt.Fprintf(&sb, " ×%d", q)
		}
	}
	if !cart.IsEmpty() {
		fmt.Fprintf(&sb, "\n\n🛒 %d in cart · *%s*", cart.ItemCount(), formatPrice(cart.Total()))
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, it := range items {
		label := it.Name
		if q := cart.Quantity(it.ID); q > 0 {
			label = fmt.Sprintf("%s ×%d", it.Name, q)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			button(label, cbItem, it.ID),
			button("➖", cbDecrease, it.ID),
			button("➕", cbAdd, it.ID),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		cartButton(cart),
		button("⬅️ Categories", cbCategories, ""),
	))
	return sb.String(), tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func itemView(it models.MenuItem, restaurantID string, qty int) (string, tgbotapi.InlineKeyboardMarkup) {
	text := fmt.Sprintf("*%s*\n%s\n\n💵 %s", esc(it.Name), esc(it.Description), formatPrice(it.Price))
	addLabel := "➕ Add to cart"
	if qty > 0 {
		addLabel = fmt.Sprintf("➕ Add to cart (%d)", qty)
	}
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(button(addLabel, cbAddFromItem, it.ID)),
	}
	if restaurantID != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button("⬅️ Back to menu", cbRestaurant, restaurantID)))
	}
	return text, tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func cartView(cart *services.Cart) (string, tgbotapi.InlineKeyboardMarkup) {
	if cart.IsEmpty() {
		return "🛒 Your cart is empty.", tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(button("📂 Browse categories", cbCategories, "")),
		)
	}

	var sb strings.Builder
	sb.WriteString("🛒 *Your cart*")
	if cart.RestaurantName != "" {
		fmt.Fprintf(&sb, " · %s", esc(cart.RestaurantName))
	}
	sb.WriteString("\n")

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, l := range cart.Lines() {
		fmt.Fprintf(&sb, "\n• %s ×%d — %s", esc(l.Item.Name), l.Quantity, formatPrice(l.Subtotal()))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			button("➖", cbCartDecrease, l.Item.ID),
			button(fmt.Sprintf("%s ×%d", l.Item.Name, l.Quantity), cbNoop, ""),
			button("➕", cbCartIncrease, l.Item.ID),
			button("🗑", cbCartRemove, l.Item.ID),
		))
	}
	fmt.Fprintf(&sb, "\n\n*Total: %s*", formatPrice(cart.Total()))

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(button("✅ Checkout", cbCheckout, "")))
	if cart.RestaurantID != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button("⬅️ Back to menu", cbRestaurant, cart.RestaurantID)))
	}
	return sb.String(), tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func confirmKeyboard(yesLabel, yesData, noData string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Cancel", noData),
			tgbotapi.NewInlineKeyboardButtonData(yesLabel, yesData),
		),
	)
}

func profileCaption(acc models.UserAccount) string {
	return fmt.Sprintf("👤 *%s*\n@%s\n\n📧 %s\n📞 %s\n📍 %s\n📦 Orders: %d",
		esc(acc.FullName), esc(acc.Username),
		orNotSet(acc.Email), orNotSet(acc.Phone), orNotSet(acc.Address),
		len(acc.Orders),
	)
}

func profileKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			button("✏️ Name", cbEdit, fieldFullName),
			button("✏️ Email", cbEdit, fieldEmail),
		),
		tgbotapi.NewInlineKeyboardRow(
			button("✏️ Phone", cbEdit, fieldPhone),
			button("✏️ Address", cbEdit, fieldAddress),
		),
		tgbotapi.NewInlineKeyboardRow(
			button("🖼 Photo", cbEdit, fieldImage),
			button("📦 Orders", cbOrders, ""),
		),
		tgbotapi.NewInlineKeyboardRow(button("🚪 Log out", cbLogout, "")),
	)
}

func ordersView(acc models.UserAccount) (string, tgbotapi.InlineKeyboardMarkup) {
	back := tgbotapi.NewInlineKeyboardRow(button("⬅️ Profile", cbProfile, ""))
	if len(acc.Orders) == 0 {
		return "📦 You have no orders yet.", tgbotapi.NewInlineKeyboardMarkup(back)
	}

	var sb strings.Builder
	sb.WriteString("📦 *Order history*")
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, o := range acc.Orders {
		fmt.Fprintf(&sb, "\n\n*#%d* · %s · %s", o.ID, esc(o.Date), esc(o.RestaurantName))
		for _, l := range o.Items {
			fmt.Fprintf(&sb, "\n  %s ×%d — %s", esc(l.Name), l.Quantity, formatPrice(l.Subtotal()))
		}
		fmt.Fprintf(&sb, "\n  Total: *%s*", formatPrice(o.Total()))
		id := strconv.FormatInt(o.ID, 10)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button("🗑 Delete #"+id, cbOrderDelete, id)))
	}
	rows = append(rows, back)
	return sb.String(), tgbotapi.NewInlineKeyboardMarkup(rows...)
}
