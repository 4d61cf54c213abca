package services

import (
	"food-storefront/models"

	"github.com/shopspring/decimal"
)

const mockPassword = "123456"

type seedOrder struct {
	id         int64
	date       string
	restaurant string
	lines      []models.OrderLine
	total      string
}

func line(name string, qty int, price string) models.OrderLine {
	return models.OrderLine{Name: name, Quantity: qty, Price: decimal.RequireFromString(price)}
}

// MockAccounts returns the fixed demo users. Every stated order total is
// checked against its lines.
func MockAccounts() ([]SeedAccount, error) {
	users := []struct {
		account models.UserAccount
		orders  []seedOrder
	}{
		{
			account: models.UserAccount{
				ID: 1, Username: "Hamadk", FullName: "Hamad khalid", Email: "hamad@example.com",
				Phone: "55012890", Address: "1 St, Sabah salem, block 12",
				Image: "https://thumbs.dreamstime.com/b/faceless-businessman-avatar-man-suit-blue-tie-human-profile-userpic-face-features-web-picture-gentlemen-85824471.jpg",
			},
			orders: []seedOrder{
				{1, "2024-03-20", "Pasta Paradise", []models.OrderLine{
					line("Spaghetti Carbonara", 1, "12.99"),
					line("Margherita Pizza", 1, "10.99"),
					line("Tiramisu", 1, "6.99"),
				}, "30.97"},
				{2, "2024-03-18", "Wok Express", []models.OrderLine{
					line("Kung Pao Chicken", 1, "13.99"),
					line("Spring Rolls", 2, "5.99"),
				}, "25.97"},
			},
		},
		{
			account: models.UserAccount{
				ID: 2, Username: "Salma", FullName: "Salma thamer", Email: "salma@example.com",
				Phone: "99501189", Address: "1 St, salwa, block 3",
				Image: "https://png.pngtree.com/png-vector/20220807/ourmid/pngtree-dark-skin-women-avatar-wearing-blue-suit-png-image_6102784.png",
			},
			orders: []seedOrder{
				{3, "2024-03-21", "Taco Town", []models.OrderLine{
					line("Beef Tacos", 2, "8.99"),
					line("Chicken Quesadilla", 1, "9.99"),
					line("Churros", 2, "4.99"),
				}, "37.95"},
			},
		},
		{
			account: models.UserAccount{
				ID: 3, Username: "Majed", FullName: "Majed salem", Email: "majed@example.com",
				Phone: "55012893", Address: "1 St, abdullah al-salem, block 6",
				Image: "https://static.vecteezy.com/system/resources/thumbnails/015/413/618/small/elegant-man-in-business-suit-with-badge-man-business-avatar-profile-picture-illustration-isolated-vector.jpg",
			},
			orders: []seedOrder{
				{4, "2024-03-22", "Spice Route", []models.OrderLine{
					line("Butter Chicken", 1, "15.99"),
					line("Paneer Tikka", 1, "12.99"),
					line("Gulab Jamun", 2, "5.99"),
				}, "40.96"},
				{5, "2024-03-19", "T-Grill", []models.OrderLine{
					line("Machboos", 1, "17.99"),
					line("Kebab Skewers", 2, "14.99"),
				}, "47.97"},
			},
		},
		{
			account: models.UserAccount{
				ID: 4, Username: "Farah", FullName: "Farah mohammed", Email: "farah@example.com",
				Phone: "55012892", Address: "1 St, rumaithiya, block 2",
				Image: "https://static.vecteezy.com/system/resources/previews/025/669/125/non_2x/businesswoman-confident-business-successful-clipart-illustration-design-vector.jpg",
			},
			orders: []seedOrder{
				{6, "2024-03-23", "Pasta Paradise", []models.OrderLine{
					line("Margherita Pizza", 2, "10.99"),
					line("Tiramisu", 1, "6.99"),
				}, "28.97"},
				{7, "2024-03-21", "Wok Express", []models.OrderLine{
					line("Sweet and Sour Chicken", 1, "14.99"),
					line("Spring Rolls", 2, "5.99"),
				}, "26.97"},
				{8, "2024-03-20", "T-Grill", []models.OrderLine{
					line("Machboos", 1, "17.99"),
					line("Dates Pudding", 2, "6.99"),
				}, "31.97"},
			},
		},
	}

	out := make([]SeedAccount, 0, len(users))
	for _, u := range users {
		acc := u.account
		for _, so := range u.orders {
			o, err := models.NewOrder(so.id, so.date, so.restaurant, so.lines, decimal.RequireFromString(so.total))
			if err != nil {
				return nil, err
			}
			acc.Orders = append(acc.Orders, o)
		}
		out = append(out, SeedAccount{Account: acc, Password: mockPassword})
	}
	return out, nil
}
