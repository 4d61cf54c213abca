package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"food-storefront/catalog"
	"food-storefront/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) showHome(chatID int64) {
	acc, ok := b.sessions.Get(chatID).Current()
	if !ok {
		text, kb := guestView()
		b.sendView(chatID, text, kb)
		return
	}
	text, kb := homeView(acc, b.state(chatID).cart)
	b.sendView(chatID, text, kb)
}

func (b *Bot) showCategories(ctx context.Context, chatID int64, src *tgbotapi.Message, query string) {
	cats, err := b.catalog.ListCategories(ctx)
	if err != nil {
		b.fetchFailed(chatID, "categories", err)
		return
	}
	b.state(chatID).categories = cats
	text, kb := categoriesView(catalog.FilterCategories(cats, query), query)
	b.show(chatID, src, text, kb)
}

func (b *Bot) showRestaurants(ctx context.Context, chatID int64, src *tgbotapi.Message) {
	rests, err := b.catalog.ListRestaurants(ctx)
	if err != nil {
		b.fetchFailed(chatID, "restaurants", err)
		return
	}
	text, kb := restaurantsView("All restaurants", rests)
	b.show(chatID, src, text, kb)
}

func (b *Bot) showCategory(ctx context.Context, chatID int64, src *tgbotapi.Message, categoryID string) {
	rests, err := b.catalog.RestaurantsInCategory(ctx, categoryID)
	if err != nil {
		b.fetchFailed(chatID, "restaurants", err)
		return
	}
	title := "Restaurants"
	for _, c := range b.state(chatID).categories {
		if c.ID == categoryID {
			title = c.Name
			break
		}
	}
	text, kb := restaurantsView(title, rests)
	b.show(chatID, src, text, kb)
}

func (b *Bot) showSearch(ctx context.Context, chatID int64, query string) {
	cats, err := b.catalog.ListCategories(ctx)
	if err != nil {
		b.fetchFailed(chatID, "categories", err)
		return
	}
	rests, err := b.catalog.ListRestaurants(ctx)
	if err != nil {
		b.fetchFailed(chatID, "restaurants", err)
		return
	}
	b.state(chatID).categories = cats
	text, kb := searchView(query, catalog.FilterCategories(cats, query), catalog.FilterRestaurants(rests, query))
	b.sendView(chatID, text, kb)
}

func (b *Bot) showMenu(ctx context.Context, chatID int64, src *tgbotapi.Message, restaurantID string) {
	rest, err := b.catalog.GetRestaurant(ctx, restaurantID)
	if err != nil {
		b.fetchFailed(chatID, "restaurant", err)
		return
	}
	items, err := b.catalog.ListMenuItems(ctx, restaurantID)
	if err != nil {
		b.fetchFailed(chatID, "menu", err)
		return
	}
	st := b.state(chatID)
	st.restaurant = rest
	st.menu = items
	b.renderMenu(chatID, src)
}

// renderMenu redraws the last opened menu with current cart quantities.
func (b *Bot) renderMenu(chatID int64, src *tgbotapi.Message) {
	st := b.state(chatID)
	if st.restaurant.ID == "" {
		b.showCart(chatID, src)
		return
	}
	text, kb := menuView(st.restaurant, st.menu, st.cart)
	b.show(chatID, src, text, kb)
}

func (b *Bot) showItem(ctx context.Context, chatID int64, src *tgbotapi.Message, itemID string) {
	it, err := b.catalog.GetItemDetails(ctx, itemID)
	if err != nil {
		b.fetchFailed(chatID, "item details", err)
		return
	}
	st := b.state(chatID)
	text, kb := itemView(it, st.restaurant.ID, st.cart.Quantity(it.ID))
	b.show(chatID, src, text, kb)
}

// addToCart adds one of itemID. A cart holding another restaurant's items is
// replaced by a fresh one.
func (b *Bot) addToCart(ctx context.Context, chatID int64, src *tgbotapi.Message, itemID string, fromDetails bool) string {
	st := b.state(chatID)
	item, ok := st.menuItem(itemID)
	if !ok {
		var err error
		item, err = b.catalog.GetItemDetails(ctx, itemID)
		if err != nil {
			b.fetchFailed(chatID, "item", err)
			return ""
		}
	}

	toast := "Added to cart"
	if !st.cart.IsEmpty() && st.cart.RestaurantID != "" && st.restaurant.ID != "" && st.cart.RestaurantID != st.restaurant.ID {
		b.send(chatID, fmt.Sprintf("Your cart had items from %s. Started a new cart for %s.", st.cart.RestaurantName, st.restaurant.Name))
		st.cart.Clear()
		toast = "New cart started"
	}
	st.cart.Add(item, st.restaurant.ID, st.restaurant.Name)

	if fromDetails {
		text, kb := itemView(item, st.restaurant.ID, st.cart.Quantity(item.ID))
		b.show(chatID, src, text, kb)
	} else {
		b.renderMenu(chatID, src)
	}
	return toast
}

func (b *Bot) showCart(chatID int64, src *tgbotapi.Message) {
	text, kb := cartView(b.state(chatID).cart)
	b.show(chatID, src, text, kb)
}

func (b *Bot) confirmCartRemove(chatID int64, src *tgbotapi.Message, itemID string) {
	st := b.state(chatID)
	if !st.cart.Contains(itemID) {
		b.showCart(chatID, src)
		return
	}
	name := itemID
	for _, l := range st.cart.Lines() {
		if l.Item.ID == itemID && l.Item.Name != "" {
			name = l.Item.Name
		}
	}
	text := fmt.Sprintf("Remove *%s* from your cart?", esc(name))
	b.show(chatID, src, text, confirmKeyboard("Remove", callback(cbCartRemoveOK, itemID), cbCart))
}

func (b *Bot) checkout(chatID int64) string {
	err := services.Checkout(b.state(chatID).cart)
	switch {
	case errors.Is(err, services.ErrCartEmpty):
		return "Your cart is empty"
	case errors.Is(err, services.ErrCheckoutUnavailable):
		b.send(chatID, "Checkout is not available yet. Your cart has been kept.")
	case err != nil:
		b.logger.Errorw("checkout", "chat_id", chatID, "error", err)
	}
	return ""
}

func (b *Bot) showProfile(chatID int64) {
	acc, ok := b.requireAccount(chatID)
	if !ok {
		return
	}
	caption := profileCaption(acc)
	kb := profileKeyboard()
	if acc.Image == "" {
		b.sendView(chatID, caption, kb)
		return
	}

	var file tgbotapi.RequestFileData = tgbotapi.FileID(acc.Image)
	if strings.HasPrefix(acc.Image, "http://") || strings.HasPrefix(acc.Image, "https://") {
		file = tgbotapi.FileURL(acc.Image)
	}
	photo := tgbotapi.NewPhoto(chatID, file)
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeMarkdown
	photo.ReplyMarkup = kb
	if _, err := b.api.Send(photo); err != nil {
		// fall back to text when the image cannot be sent
		b.logger.Warnw("send profile photo", "chat_id", chatID, "error", err)
		b.sendView(chatID, caption, kb)
	}
}

func (b *Bot) showOrders(chatID int64, src *tgbotapi.Message) {
	acc, ok := b.requireAccount(chatID)
	if !ok {
		return
	}
	text, kb := ordersView(acc)
	b.show(chatID, src, text, kb)
}

func (b *Bot) confirmOrderDelete(chatID int64, src *tgbotapi.Message, arg string) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return
	}
	text := fmt.Sprintf("Delete order *#%d*? This cannot be undone.", id)
	b.show(chatID, src, text, confirmKeyboard("Delete", callback(cbOrderDeleteOK, arg), cbOrders))
}

func (b *Bot) deleteOrder(chatID int64, src *tgbotapi.Message, arg string) string {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return ""
	}
	toast := "Order deleted"
	if err := b.auth.DeleteOrder(b.sessions.Get(chatID), id); err != nil {
		if !errors.Is(err, services.ErrOrderNotFound) {
			b.logger.Errorw("delete order", "chat_id", chatID, "order_id", id, "error", err)
		}
		toast = "Order not found"
	}
	b.showOrders(chatID, src)
	return toast
}

func (b *Bot) logout(chatID int64) {
	b.state(chatID)
	// the session listener clears the cart and any flow
	b.auth.Logout(b.sessions.Get(chatID))
	b.send(chatID, "You have been logged out.")
	text, kb := guestView()
	b.sendView(chatID, text, kb)
}
