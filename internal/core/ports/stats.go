package ports

import "context"

type BookingStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Cancelled int64 `json:"cancelled"`
}

type MediaStats struct {
	Total     int64 `json:"total"`
	Published int64 `json:"published"`
}

type MessageStats struct {
	Total   int64 `json:"total"`
	Unread  int64 `json:"unread"`
	Replied int64 `json:"replied"`
}

// DashboardStats backs the admin dashboard summary cards.
type DashboardStats struct {
	Bookings BookingStats `json:"bookings"`
	Photos   MediaStats   `json:"photos"`
	Videos   MediaStats   `json:"videos"`
	Messages MessageStats `json:"messages"`
}

type StatsService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
}
