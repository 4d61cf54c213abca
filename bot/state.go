package bot

import (
	"food-storefront/models"
	"food-storefront/services"
)

// Flow steps for text conversations.
const (
	stepLoginUsername  = "login_username"
	stepLoginPassword  = "login_password"
	stepSignupUsername = "signup_username"
	stepSignupFullName = "signup_full_name"
	stepSignupEmail    = "signup_email"
	stepSignupPassword = "signup_password"
	stepEditValue      = "edit_value"
	stepEditPhoto      = "edit_photo"
)

// Editable profile fields, used as the edit callback argument.
const (
	fieldFullName = "fullName"
	fieldEmail    = "email"
	fieldPhone    = "phone"
	fieldAddress  = "address"
	fieldImage    = "image"
)

var fieldLabels = map[string]string{
	fieldFullName: "full name",
	fieldEmail:    "email",
	fieldPhone:    "phone number",
	fieldAddress:  "address",
	fieldImage:    "photo",
}

type flowState struct {
	Step     string
	Username string
	FullName string
	Email    string
	Field    string // profile field being edited
}

// chatState is everything the bot remembers about one chat besides its session.
type chatState struct {
	cart *services.Cart
	flow *flowState

	categories []models.Category // last listed, for titles

	// restaurant whose menu was opened last, and that menu
	restaurant models.Restaurant
	menu       []models.MenuItem

	owner int64 // account id the cart belongs to, 0 when logged out
}

// sessionChanged resets everything tied to the previous account.
func (s *chatState) sessionChanged(acc *models.UserAccount) {
	if acc != nil && acc.ID == s.owner {
		return
	}
	s.cart.Clear()
	s.flow = nil
	s.restaurant = models.Restaurant{}
	s.menu = nil
	s.owner = 0
	if acc != nil {
		s.owner = acc.ID
	}
}

func (s *chatState) menuItem(id string) (models.MenuItem, bool) {
	for _, it := range s.menu {
		if it.ID == id {
			return it, true
		}
	}
	return models.MenuItem{}, false
}

func (b *Bot) state(chatID int64) *chatState {
	b.statesMu.Lock()
	defer b.statesMu.Unlock()
	st, ok := b.states[chatID]
	if !ok {
		st = &chatState{cart: services.NewCart()}
		sess := b.sessions.Get(chatID)
		if acc, loggedIn := sess.Current(); loggedIn {
			st.owner = acc.ID
		}
		sess.Subscribe(st.sessionChanged)
		b.states[chatID] = st
	}
	return st
}
