package model

// Preference cache keys.
const (
	PreferenceKeyCurrency      = "currency"
	PreferenceKeyNotifications = "notifications"
)

// NotificationPreferences holds the user's notification switches.
type NotificationPreferences struct {
	Email     bool `json:"email"`
	Price     bool `json:"price"`
	News      bool `json:"news"`
	Portfolio bool `json:"portfolio"`
}

// DefaultNotificationPreferences returns the switches used before anything is stored.
func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{
		Email:     true,
		Price:     true,
		News:      false,
		Portfolio: true,
	}
}

// Toggle flips the named switch. It returns false when key is unknown.
func (p *NotificationPreferences) Toggle(key string) bool {
	switch key {
	case "email":
		p.Email = !p.Email
	case "price":
		p.Price = !p.Price
	case "news":
		p.News = !p.News
	case "portfolio":
		p.Portfolio = !p.Portfolio
	default:
		return false
	}
	return true
}

// Preferences is the full preference state exposed to clients.
type Preferences struct {
	Currency      DisplayUnit             `json:"currency"`
	Notifications NotificationPreferences `json:"notifications"`
}
