package bot

import (
	"errors"
	"fmt"
	"strings"

	"food-storefront/models"
	"food-storefront/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) startLogin(chatID int64) {
	b.state(chatID).flow = &flowState{Step: stepLoginUsername}
	b.send(chatID, "🔑 Send your username. /cancel to stop.")
}

func (b *Bot) startSignup(chatID int64) {
	b.state(chatID).flow = &flowState{Step: stepSignupUsername}
	b.send(chatID, "📝 Choose a username. /cancel to stop.")
}

func (b *Bot) startEdit(chatID int64, field string) {
	label, ok := fieldLabels[field]
	if !ok {
		return
	}
	st := b.state(chatID)
	if field == fieldImage {
		st.flow = &flowState{Step: stepEditPhoto, Field: field}
		b.send(chatID, "🖼 Send a photo, or an image URL. /cancel to stop.")
		return
	}
	st.flow = &flowState{Step: stepEditValue, Field: field}
	b.send(chatID, fmt.Sprintf("✏️ Send your new %s. /cancel to stop.", label))
}

func (b *Bot) handleFlow(chatID int64, st *chatState, msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)
	f := st.flow

	switch f.Step {
	case stepLoginUsername:
		f.Username = text
		f.Step = stepLoginPassword
		b.send(chatID, "Now send your password.")

	case stepLoginPassword:
		// the password should not stay in the chat history
		if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, msg.MessageID)); err != nil {
			b.logger.Debugw("delete password message", "chat_id", chatID, "error", err)
		}
		b.finishLogin(chatID, st, f.Username, msg.Text)

	case stepSignupUsername:
		f.Username = text
		f.Step = stepSignupFullName
		b.send(chatID, "Your full name?")
	case stepSignupFullName:
		f.FullName = text
		f.Step = stepSignupEmail
		b.send(chatID, "Your email?")
	case stepSignupEmail:
		f.Email = text
		f.Step = stepSignupPassword
		b.send(chatID, "Choose a password.")
	case stepSignupPassword:
		if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, msg.MessageID)); err != nil {
			b.logger.Debugw("delete password message", "chat_id", chatID, "error", err)
		}
		b.finishSignup(chatID, st, services.Signup{
			Username: f.Username,
			FullName: f.FullName,
			Email:    f.Email,
			Password: msg.Text,
		})

	case stepEditValue:
		b.finishEdit(chatID, st, f.Field, text)
	case stepEditPhoto:
		if n := len(msg.Photo); n > 0 {
			// last size is the largest
			b.finishEdit(chatID, st, fieldImage, msg.Photo[n-1].FileID)
			return
		}
		if text == "" {
			b.send(chatID, "Please send a photo or an image URL.")
			return
		}
		b.finishEdit(chatID, st, fieldImage, text)
	}
}

func (b *Bot) finishLogin(chatID int64, st *chatState, username, password string) {
	acc, err := b.auth.Login(b.sessions.Get(chatID), username, password)
	var te *services.ThrottledError
	switch {
	case err == nil:
		st.flow = nil
		b.logger.Infow("login", "chat_id", chatID, "user_id", acc.ID)
		text, kb := homeView(acc, st.cart)
		b.sendView(chatID, text, kb)
		return
	case errors.Is(err, services.ErrMissingFields):
		b.send(chatID, "Please fill in all fields.")
	case errors.As(err, &te):
		b.send(chatID, fmt.Sprintf("Too many failed attempts. Try again in %d s.", te.WaitSeconds))
	case errors.Is(err, services.ErrInvalidCredentials):
		b.logger.Infow("login failed", "chat_id", chatID, "username", username)
		b.send(chatID, "Invalid username or password.")
	default:
		b.logger.Errorw("login", "chat_id", chatID, "error", err)
		b.send(chatID, "Something went wrong. Please try again.")
	}
	st.flow = &flowState{Step: stepLoginUsername}
	b.send(chatID, "Send your username to try again, or /cancel.")
}

func (b *Bot) finishSignup(chatID int64, st *chatState, in services.Signup) {
	acc, err := b.auth.Signup(in)
	switch {
	case err == nil:
		b.logger.Infow("signup", "chat_id", chatID, "user_id", acc.ID)
		b.send(chatID, "✅ Account created successfully.")
		b.startLogin(chatID)
		return
	case errors.Is(err, services.ErrMissingFields):
		b.send(chatID, "Please fill in all fields.")
	case errors.Is(err, services.ErrUsernameTaken):
		b.send(chatID, "Username already exists.")
	default:
		b.logger.Errorw("signup", "chat_id", chatID, "error", err)
		b.send(chatID, "Something went wrong. Please try again.")
	}
	st.flow = &flowState{Step: stepSignupUsername}
	b.send(chatID, "Choose a username to start over, or /cancel.")
}

func (b *Bot) finishEdit(chatID int64, st *chatState, field, value string) {
	sess := b.sessions.Get(chatID)
	acc, ok := sess.Current()
	if !ok {
		st.flow = nil
		text, kb := guestView()
		b.sendView(chatID, text, kb)
		return
	}

	upd := profileUpdate(acc)
	switch field {
	case fieldFullName:
		upd.FullName = value
	case fieldEmail:
		upd.Email = value
	case fieldPhone:
		upd.Phone = value
	case fieldAddress:
		upd.Address = value
	case fieldImage:
		upd.Image = value
	}

	if _, err := b.auth.UpdateProfile(sess, upd); err != nil {
		if errors.Is(err, services.ErrMissingFields) {
			b.send(chatID, "Please fill in all fields. Send a non-empty value, or /cancel.")
			return
		}
		b.logger.Errorw("update profile", "chat_id", chatID, "error", err)
		b.send(chatID, "Something went wrong. Please try again.")
		st.flow = nil
		return
	}
	st.flow = nil
	b.send(chatID, "✅ Profile updated successfully.")
	b.showProfile(chatID)
}

func profileUpdate(acc models.UserAccount) services.ProfileUpdate {
	return services.ProfileUpdate{
		FullName: acc.FullName,
		Email:    acc.Email,
		Phone:    acc.Phone,
		Address:  acc.Address,
		Image:    acc.Image,
	}
}
