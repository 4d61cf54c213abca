package models

// UserAccount is the profile handed to views. Credentials live in the directory only.
type UserAccount struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	FullName string  `json:"fullName"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Address  string  `json:"address"`
	Image    string  `json:"image"`
	Orders   []Order `json:"orders"`
}

// Clone returns a copy that shares no slices with a.
func (a UserAccount) Clone() UserAccount {
	c := a
	if a.Orders != nil {
		c.Orders = make([]Order, len(a.Orders))
		for i, o := range a.Orders {
			o.Items = append([]OrderLine(nil), o.Items...)
			c.Orders[i] = o
		}
	}
	return c
}

// OrderIndex returns the position of orderID in a.Orders, or -1.
func (a UserAccount) OrderIndex(orderID int64) int {
	for i, o := range a.Orders {
		if o.ID == orderID {
			return i
		}
	}
	return -1
}
