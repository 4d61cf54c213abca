package bot

import "strings"

// Callback data is "action" or "action:arg". Telegram caps it at 64 bytes,
// which a 24-char catalog id plus the longest prefix stays well under.
const (
	cbLogin         = "login"
	cbSignup        = "signup"
	cbCategories    = "cats"
	cbRestaurants   = "rests"
	cbCategory      = "cat"
	cbRestaurant    = "rest"
	cbItem          = "item"
	cbAdd           = "add"
	cbAddFromItem   = "iadd"
	cbDecrease      = "dec"
	cbCart          = "cart"
	cbCartIncrease  = "cinc"
	cbCartDecrease  = "cdec"
	cbCartRemove    = "crm"
	cbCartRemoveOK  = "crmok"
	cbCheckout      = "checkout"
	cbProfile       = "profile"
	cbOrders        = "orders"
	cbOrderDelete   = "odel"
	cbOrderDeleteOK = "odelok"
	cbEdit          = "edit"
	cbLogout        = "logout"
	cbNoop          = "noop"
)

func parseCallback(data string) (action, arg string) {
	action, arg, _ = strings.Cut(data, ":")
	return action, arg
}

func callback(action, arg string) string {
	if arg == "" {
		return action
	}
	return action + ":" + arg
}
