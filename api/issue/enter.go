package issue

type Issue struct{}
