package enums

import "fmt"

// NewsletterStatus tracks the opt-in state of a newsletter subscription.
type NewsletterStatus string

const (
	NewsletterStatusSubscribed   NewsletterStatus = "subscribed"
	NewsletterStatusUnsubscribed NewsletterStatus = "unsubscribed"
)

var validNewsletterStatuses = []NewsletterStatus{
	NewsletterStatusSubscribed,
	NewsletterStatusUnsubscribed,
}

// String implements fmt.Stringer.
func (n NewsletterStatus) String() string {
	return string(n)
}

// IsValid reports whether the value is a known NewsletterStatus.
func (n NewsletterStatus) IsValid() bool {
	for _, candidate := range validNewsletterStatuses {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNewsletterStatus converts raw input into a NewsletterStatus.
func ParseNewsletterStatus(value string) (NewsletterStatus, error) {
	for _, candidate := range validNewsletterStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid newsletter status %q", value)
}
