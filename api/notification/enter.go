package notification

type Notification struct{}
