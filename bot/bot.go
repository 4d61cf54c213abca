package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"food-storefront/catalog"
	"food-storefront/config"
	"food-storefront/models"
	"food-storefront/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Sender is the part of *tgbotapi.BotAPI the storefront talks to.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Catalog is the read-only catalog the storefront browses.
type Catalog interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListRestaurants(ctx context.Context) ([]models.Restaurant, error)
	GetRestaurant(ctx context.Context, id string) (models.Restaurant, error)
	ListMenuItems(ctx context.Context, restaurantID string) ([]models.MenuItem, error)
	GetItemDetails(ctx context.Context, itemID string) (models.MenuItem, error)
	RestaurantsInCategory(ctx context.Context, categoryID string) ([]models.Restaurant, error)
}

// Bot is the Telegram storefront. Updates are handled one at a time.
type Bot struct {
	tg      *tgbotapi.BotAPI
	api     Sender
	catalog Catalog
	auth    *services.Auth
	logger  *zap.SugaredLogger

	sessions *services.Sessions

	states   map[int64]*chatState
	statesMu sync.Mutex
}

func New(cfg *config.Config, cat Catalog, auth *services.Auth, logger *zap.SugaredLogger) (*Bot, error) {
	if cfg.Telegram.Token == "" {
		return nil, errors.New("TOKEN not set")
	}
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}
	b := newBot(api, cat, auth, logger)
	b.tg = api
	return b, nil
}

func newBot(api Sender, cat Catalog, auth *services.Auth, logger *zap.SugaredLogger) *Bot {
	return &Bot{
		api:      api,
		catalog:  cat,
		auth:     auth,
		logger:   logger,
		sessions: services.NewSessions(),
		states:   make(map[int64]*chatState),
	}
}

func (b *Bot) setBotCommands() error {
	cfg := tgbotapi.SetMyCommandsConfig{
		Commands: []tgbotapi.BotCommand{
			{Command: "start", Description: "Home"},
			{Command: "categories", Description: "Browse categories"},
			{Command: "restaurants", Description: "All restaurants"},
			{Command: "search", Description: "Search categories and restaurants"},
			{Command: "cart", Description: "Your cart"},
			{Command: "profile", Description: "Your profile"},
			{Command: "orders", Description: "Order history"},
			{Command: "login", Description: "Log in"},
			{Command: "signup", Description: "Create an account"},
			{Command: "logout", Description: "Log out"},
			{Command: "cancel", Description: "Cancel the current step"},
		},
	}
	_, err := b.api.Request(cfg)
	return err
}

// Run polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	if b.tg == nil {
		return errors.New("bot: no telegram client")
	}
	if err := b.setBotCommands(); err != nil {
		b.logger.Warnw("set bot commands", "error", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.tg.GetUpdatesChan(u)

	b.logger.Infow("bot started", "username", b.tg.Self.UserName)
	for {
		select {
		case <-ctx.Done():
			b.tg.StopReceivingUpdates()
			b.logger.Infow("bot stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate routes one update.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handleCallback(ctx, update.CallbackQuery)
		return
	}
	if update.Message == nil {
		return
	}
	b.handleMessage(ctx, update.Message)
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	st := b.state(chatID)

	if msg.IsCommand() {
		st.flow = nil
		b.handleCommand(ctx, chatID, msg.Command(), strings.TrimSpace(msg.CommandArguments()))
		return
	}

	if st.flow != nil {
		b.handleFlow(chatID, st, msg)
		return
	}
	b.send(chatID, "Use /start to see what I can do.")
}

func (b *Bot) handleCommand(ctx context.Context, chatID int64, cmd, args string) {
	switch cmd {
	case "start":
		b.showHome(chatID)
		return
	case "login":
		b.startLogin(chatID)
		return
	case "signup":
		b.startSignup(chatID)
		return
	case "cancel":
		b.send(chatID, "Cancelled.")
		return
	case "logout":
		b.logout(chatID)
		return
	}

	if _, ok := b.requireAccount(chatID); !ok {
		return
	}
	switch cmd {
	case "categories":
		b.showCategories(ctx, chatID, nil, "")
	case "restaurants":
		b.showRestaurants(ctx, chatID, nil)
	case "search":
		if args == "" {
			b.send(chatID, "Usage: /search <name>")
			return
		}
		b.showSearch(ctx, chatID, args)
	case "cart":
		b.showCart(chatID, nil)
	case "profile":
		b.showProfile(chatID)
	case "orders":
		b.showOrders(chatID, nil)
	default:
		b.send(chatID, "Unknown command. Use /start to see what I can do.")
	}
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil {
		b.answer(cq.ID, "")
		return
	}
	chatID := cq.Message.Chat.ID
	action, arg := parseCallback(cq.Data)

	toast := ""
	switch action {
	case cbNoop:
	case cbLogin:
		b.startLogin(chatID)
	case cbSignup:
		b.startSignup(chatID)
	default:
		if _, ok := b.requireAccount(chatID); !ok {
			break
		}
		toast = b.handleAuthedCallback(ctx, chatID, cq.Message, action, arg)
	}
	b.answer(cq.ID, toast)
}

// handleAuthedCallback returns an optional toast for the callback answer.
func (b *Bot) handleAuthedCallback(ctx context.Context, chatID int64, src *tgbotapi.Message, action, arg string) string {
	st := b.state(chatID)
	switch action {
	case cbCategories:
		b.showCategories(ctx, chatID, src, "")
	case cbRestaurants:
		b.showRestaurants(ctx, chatID, src)
	case cbCategory:
		b.showCategory(ctx, chatID, src, arg)
	case cbRestaurant:
		b.showMenu(ctx, chatID, src, arg)
	case cbItem:
		b.showItem(ctx, chatID, src, arg)
	case cbAdd, cbAddFromItem:
		return b.addToCart(ctx, chatID, src, arg, action == cbAddFromItem)
	case cbDecrease:
		st.cart.Decrease(arg)
		b.renderMenu(chatID, src)
	case cbCart:
		b.showCart(chatID, src)
	case cbCartIncrease:
		// buttons on older messages can name an item that has left the cart
		if !st.cart.Contains(arg) {
			b.showCart(chatID, src)
			return "That item is no longer in your cart"
		}
		st.cart.Increase(arg)
		b.showCart(chatID, src)
	case cbCartDecrease:
		st.cart.Decrease(arg)
		b.showCart(chatID, src)
	case cbCartRemove:
		b.confirmCartRemove(chatID, src, arg)
	case cbCartRemoveOK:
		st.cart.Remove(arg)
		b.showCart(chatID, src)
		return "Removed"
	case cbCheckout:
		return b.checkout(chatID)
	case cbProfile:
		b.showProfile(chatID)
	case cbOrders:
		b.showOrders(chatID, src)
	case cbOrderDelete:
		b.confirmOrderDelete(chatID, src, arg)
	case cbOrderDeleteOK:
		return b.deleteOrder(chatID, src, arg)
	case cbEdit:
		b.startEdit(chatID, arg)
	case cbLogout:
		b.logout(chatID)
	}
	return ""
}

// requireAccount returns the chat's logged-in account, or shows the guest
// screen and reports false.
func (b *Bot) requireAccount(chatID int64) (models.UserAccount, bool) {
	acc, ok := b.sessions.Get(chatID).Current()
	if !ok {
		text, kb := guestView()
		b.sendView(chatID, text, kb)
	}
	return acc, ok
}

// fetchFailed reports a catalog failure; the chat stays on its current screen.
func (b *Bot) fetchFailed(chatID int64, what string, err error) {
	b.logger.Warnw("catalog fetch failed", "chat_id", chatID, "what", what, "error", err)
	if errors.Is(err, catalog.ErrNotFound) {
		b.send(chatID, fmt.Sprintf("Sorry, that %s no longer exists.", what))
		return
	}
	b.send(chatID, fmt.Sprintf("Could not load %s. Please try again.", what))
}

func (b *Bot) answer(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		b.logger.Debugw("answer callback", "error", err)
	}
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Errorw("send error", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) sendView(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = kb
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Errorw("send error", "chat_id", chatID, "error", err)
	}
}

// show edits src in place when it is a text message, otherwise sends a new one.
func (b *Bot) show(chatID int64, src *tgbotapi.Message, text string, kb tgbotapi.InlineKeyboardMarkup) {
	if src == nil || len(src.Photo) > 0 {
		b.sendView(chatID, text, kb)
		return
	}
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, src.MessageID, text, kb)
	edit.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(edit); err != nil && !strings.Contains(err.Error(), "message is not modified") {
		b.logger.Errorw("edit error", "chat_id", chatID, "message_id", src.MessageID, "error", err)
	}
}
